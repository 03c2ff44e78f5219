package kite

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := New("testkey", "testsecret")
	client.SetBaseURL(srv.URL)
	return client
}

func TestLoginURL(t *testing.T) {
	client := New("mykey", "secret")
	url := client.LoginURL()
	if !strings.Contains(url, "api_key=mykey") || !strings.Contains(url, "v=3") {
		t.Errorf("unexpected login url: %s", url)
	}
}

func TestHoldingsUnwrapsEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/portfolio/holdings" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("X-Kite-Version"); got != "3" {
			t.Errorf("missing version header, got %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "token testkey:tok123" {
			t.Errorf("unexpected auth header %q", got)
		}
		fmt.Fprint(w, `{"status":"success","data":[
			{"tradingsymbol":"INFY","exchange":"NSE","quantity":10,"average_price":1400.5,"last_price":1500,"pnl":995}
		]}`)
	})

	holdings, err := client.WithAccessToken("tok123").Holdings(context.Background())
	if err != nil {
		t.Fatalf("Holdings: %v", err)
	}
	if len(holdings) != 1 {
		t.Fatalf("expected 1 holding, got %d", len(holdings))
	}
	h := holdings[0]
	if h.Tradingsymbol != "INFY" || h.LastPrice != 1500 || h.PnL != 995 {
		t.Errorf("unexpected holding: %+v", h)
	}
}

func TestErrorEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"status":"error","message":"Incorrect api_key or access_token.","error_type":"TokenException"}`)
	})

	_, err := client.WithAccessToken("bad").Holdings(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	var kerr *Error
	if !errors.As(err, &kerr) {
		t.Fatalf("expected *kite.Error, got %T", err)
	}
	if kerr.ErrorType != "TokenException" || kerr.StatusCode != http.StatusForbidden {
		t.Errorf("unexpected error fields: %+v", kerr)
	}
	if !strings.Contains(kerr.Error(), "Incorrect api_key") {
		t.Errorf("error message should surface upstream text: %q", kerr.Error())
	}
}

func TestGenerateSession(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/session/token" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.PostForm.Get("api_key") != "testkey" {
			t.Errorf("api_key missing from form")
		}
		if r.PostForm.Get("request_token") != "reqtok" {
			t.Errorf("request_token missing from form")
		}
		// SHA-256("testkey" + "reqtok" + "testsecret")
		if got := r.PostForm.Get("checksum"); len(got) != 64 {
			t.Errorf("checksum should be a hex sha256, got %q", got)
		}
		fmt.Fprint(w, `{"status":"success","data":{
			"user_id":"AB1234","user_name":"Test User","access_token":"acc","public_token":"pub"
		}}`)
	})

	sess, err := client.GenerateSession(context.Background(), "reqtok")
	if err != nil {
		t.Fatalf("GenerateSession: %v", err)
	}
	if sess.UserID != "AB1234" || sess.AccessToken != "acc" || sess.PublicToken != "pub" {
		t.Errorf("unexpected session: %+v", sess)
	}
}

func TestMFInstrumentsReturnsRawCSV(t *testing.T) {
	csv := "tradingsymbol,amc,name\nINF174K01LS2,Kotak_MF,Kotak Bluechip\n"
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		fmt.Fprint(w, csv)
	})

	got, err := client.WithAccessToken("tok").MFInstruments(context.Background())
	if err != nil {
		t.Fatalf("MFInstruments: %v", err)
	}
	if got != csv {
		t.Errorf("raw CSV should pass through untouched, got %q", got)
	}
}

func TestPlaceOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders/regular" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.PostForm.Get("transaction_type") != "BUY" || r.PostForm.Get("quantity") != "5" {
			t.Errorf("unexpected form: %v", r.PostForm)
		}
		fmt.Fprint(w, `{"status":"success","data":{"order_id":"151220000000000"}}`)
	})

	resp, err := client.WithAccessToken("tok").PlaceOrder(context.Background(), OrderParams{
		Exchange:        "NSE",
		Tradingsymbol:   "INFY",
		TransactionType: "BUY",
		Quantity:        5,
		Product:         "CNC",
		OrderType:       "MARKET",
		Validity:        "DAY",
	})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if resp.OrderID != "151220000000000" {
		t.Errorf("unexpected order id %q", resp.OrderID)
	}
}
