package widget_test

import (
	"errors"
	"testing"

	"github.com/Batareeed/afterpay-go/afterpay"
	"github.com/Batareeed/afterpay-go/widget"
)

func TestParseEventVariants(t *testing.T) {
	event, err := widget.ParseEvent([]byte(`{"type":"change","isValid":true,"amountDueToday":{"amount":"2.50","currency":"AUD"},"paymentScheduleChecksum":"aa"}`))
	if err != nil {
		t.Fatalf("parse change: %v", err)
	}
	change, ok := event.(widget.ChangeEvent)
	if !ok {
		t.Fatalf("got %T want ChangeEvent", event)
	}
	if !change.Status.IsValid || change.Status.PaymentScheduleChecksum != "aa" {
		t.Fatalf("change status got %+v", change.Status)
	}
	if change.Status.AmountDueToday == nil || change.Status.AmountDueToday.Amount != "2.50" {
		t.Fatalf("change amountDueToday got %+v", change.Status.AmountDueToday)
	}

	event, err = widget.ParseEvent([]byte(`{"type":"ready","isValid":false}`))
	if err != nil {
		t.Fatalf("parse ready: %v", err)
	}
	ready, ok := event.(widget.ReadyEvent)
	if !ok {
		t.Fatalf("got %T want ReadyEvent", event)
	}
	if ready.Status.IsValid || ready.Status.AmountDueToday != nil {
		t.Fatalf("ready status got %+v", ready.Status)
	}

	event, err = widget.ParseEvent([]byte(`{"type":"error","errorCode":"AMOUNT_TOO_HIGH","message":"limit"}`))
	if err != nil {
		t.Fatalf("parse error event: %v", err)
	}
	errEvent, ok := event.(widget.ErrorEvent)
	if !ok {
		t.Fatalf("got %T want ErrorEvent", event)
	}
	if errEvent.ErrorCode != "AMOUNT_TOO_HIGH" || errEvent.Message != "limit" {
		t.Fatalf("error event got %+v", errEvent)
	}

	event, err = widget.ParseEvent([]byte(`{"type":"resize","height":480}`))
	if err != nil {
		t.Fatalf("parse resize: %v", err)
	}
	resize, ok := event.(widget.ResizeEvent)
	if !ok {
		t.Fatalf("got %T want ResizeEvent", event)
	}
	if resize.Height == nil || *resize.Height != 480 {
		t.Fatalf("resize height got %v", resize.Height)
	}

	event, err = widget.ParseEvent([]byte(`{"type":"resize"}`))
	if err != nil {
		t.Fatalf("parse bare resize: %v", err)
	}
	if resize := event.(widget.ResizeEvent); resize.Height != nil {
		t.Fatalf("bare resize height got %v want nil", resize.Height)
	}
}

func TestParseEventRejects(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty", ``},
		{"not json", `resize please`},
		{"missing type", `{"height":480}`},
		{"unknown type", `{"type":"navigate","url":"https://evil.example"}`},
		{"change missing isValid", `{"type":"change"}`},
		{"ready missing isValid", `{"type":"ready","paymentScheduleChecksum":"aa"}`},
		{"bad amount", `{"type":"change","isValid":true,"amountDueToday":{"amount":"lots","currency":"AUD"}}`},
		{"height not a number", `{"type":"resize","height":"tall"}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := widget.ParseEvent([]byte(c.raw))
			var decodeErr *afterpay.DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("ParseEvent(%q) err = %v, want DecodeError", c.raw, err)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	status, err := widget.ParseStatus([]byte(`{"isValid":true,"paymentScheduleChecksum":"bb"}`))
	if err != nil {
		t.Fatalf("parse status: %v", err)
	}
	if !status.IsValid || status.PaymentScheduleChecksum != "bb" || status.AmountDueToday != nil {
		t.Fatalf("status got %+v", status)
	}

	if _, err := widget.ParseStatus([]byte(`{"paymentScheduleChecksum":"bb"}`)); err == nil {
		t.Fatal("expected error for status missing isValid")
	}
	if _, err := widget.ParseStatus([]byte(`[]`)); err == nil {
		t.Fatal("expected error for non-object status")
	}
}
