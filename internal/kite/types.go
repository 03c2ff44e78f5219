package kite

// UserSession is the payload returned by the token exchange.
type UserSession struct {
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name"`
	Email       string `json:"email"`
	UserType    string `json:"user_type"`
	Broker      string `json:"broker"`
	AccessToken string `json:"access_token"`
	PublicToken string `json:"public_token"`
	AvatarURL   string `json:"avatar_url"`
	LoginTime   string `json:"login_time"`
}

// Holding is one equity holding from /portfolio/holdings.
type Holding struct {
	Tradingsymbol string  `json:"tradingsymbol"`
	Exchange      string  `json:"exchange"`
	ISIN          string  `json:"isin"`
	Quantity      float64 `json:"quantity"`
	AveragePrice  float64 `json:"average_price"`
	LastPrice     float64 `json:"last_price"`
	PnL           float64 `json:"pnl"`
}

// Position is one row of /portfolio/positions.
type Position struct {
	Tradingsymbol string  `json:"tradingsymbol"`
	Exchange      string  `json:"exchange"`
	Product       string  `json:"product"`
	Quantity      float64 `json:"quantity"`
	AveragePrice  float64 `json:"average_price"`
	LastPrice     float64 `json:"last_price"`
	PnL           float64 `json:"pnl"`
}

// Positions groups net and day positions.
type Positions struct {
	Net []Position `json:"net"`
	Day []Position `json:"day"`
}

// MarginFunds carries the subset of fund figures the bot displays.
type MarginFunds struct {
	Cash    float64 `json:"cash"`
	Debits  float64 `json:"debits"`
	Payout  float64 `json:"payout"`
	Span    float64 `json:"span"`
	Holding float64 `json:"holding_sales"`
}

// SegmentMargins is one segment (equity or commodity) of /user/margins.
type SegmentMargins struct {
	Enabled   bool        `json:"enabled"`
	Net       float64     `json:"net"`
	Available MarginFunds `json:"available"`
	Utilised  MarginFunds `json:"utilised"`
}

type Margins struct {
	Equity    *SegmentMargins `json:"equity"`
	Commodity *SegmentMargins `json:"commodity"`
}

// Order is one row of the order book or order history.
type Order struct {
	OrderID         string  `json:"order_id"`
	Tradingsymbol   string  `json:"tradingsymbol"`
	Exchange        string  `json:"exchange"`
	TransactionType string  `json:"transaction_type"`
	OrderType       string  `json:"order_type"`
	Product         string  `json:"product"`
	Quantity        float64 `json:"quantity"`
	FilledQuantity  float64 `json:"filled_quantity"`
	Price           float64 `json:"price"`
	AveragePrice    float64 `json:"average_price"`
	Status          string  `json:"status"`
	StatusMessage   string  `json:"status_message"`
	OrderTimestamp  string  `json:"order_timestamp"`
}

// OrderParams are the fields of a regular order placement.
type OrderParams struct {
	Variety         string
	Exchange        string
	Tradingsymbol   string
	TransactionType string
	Quantity        int
	Product         string
	OrderType       string
	Price           float64
	TriggerPrice    float64
	Validity        string
}

// OrderResponse is the acknowledgement of a placed order.
type OrderResponse struct {
	OrderID string `json:"order_id"`
}

// MFHolding is one row of /mf/holdings.
type MFHolding struct {
	Folio         string  `json:"folio"`
	Fund          string  `json:"fund"`
	Tradingsymbol string  `json:"tradingsymbol"`
	AveragePrice  float64 `json:"average_price"`
	LastPrice     float64 `json:"last_price"`
	Quantity      float64 `json:"quantity"`
	PnL           float64 `json:"pnl"`
}

// MFOrder is one row of /mf/orders.
type MFOrder struct {
	OrderID         string  `json:"order_id"`
	Fund            string  `json:"fund"`
	Tradingsymbol   string  `json:"tradingsymbol"`
	TransactionType string  `json:"transaction_type"`
	Amount          float64 `json:"amount"`
	Quantity        float64 `json:"quantity"`
	AveragePrice    float64 `json:"average_price"`
	Status          string  `json:"status"`
	StatusMessage   string  `json:"status_message"`
	Folio           string  `json:"folio"`
	Variety         string  `json:"variety"`
	OrderTimestamp  string  `json:"order_timestamp"`
}

// MFSIP is one row of /mf/sips.
type MFSIP struct {
	SIPID                 string  `json:"sip_id"`
	Fund                  string  `json:"fund"`
	Tradingsymbol         string  `json:"tradingsymbol"`
	InstalmentAmount      float64 `json:"instalment_amount"`
	Frequency             string  `json:"frequency"`
	NextInstalment        string  `json:"next_instalment"`
	Status                string  `json:"status"`
	CompletedInstalments  int     `json:"completed_instalments"`
	PendingInstalments    int     `json:"pending_instalments"`
}
