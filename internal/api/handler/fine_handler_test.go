package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/librarydesk/console/internal/core/domain"
	"github.com/librarydesk/console/internal/core/service"
)

func newFineHandler(api *stubFineAPI, journal *stubRecorder) *FineHandler {
	return NewFineHandler(service.NewFineService(api, journal, zerolog.Nop()))
}

func TestFineHandler_Pay_OverpaymentRejectedLocally(t *testing.T) {
	e := newTestEcho(t)
	api := &stubFineAPI{fines: []domain.Fine{
		{ID: 1, MemberID: 7, Amount: 5, AmountPaid: 2, Status: domain.FinePartiallyPaid, Reason: "late"},
	}}
	h := newFineHandler(api, &stubRecorder{})

	c, rec := postForm(e, "/librarian/fines/1/pay", url.Values{
		"payment":    {"4"},
		"amount":     {"5"},
		"amountPaid": {"2"},
		"status":     {"PARTIALLY_PAID"},
	})
	c.SetParamNames("id")
	c.SetParamValues("1")
	signIn(c, librarian)

	if err := h.Pay(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if api.payCalls != 0 {
		t.Fatalf("backend must not be called, got %d pay calls", api.payCalls)
	}
	if !strings.Contains(rec.Body.String(), "exceeds outstanding balance") {
		t.Fatalf("expected overpayment banner, got %s", rec.Body.String())
	}
}

func TestFineHandler_Pay_ReloadsList(t *testing.T) {
	e := newTestEcho(t)
	api := &stubFineAPI{fines: []domain.Fine{
		{ID: 1, MemberID: 7, Amount: 5, Status: domain.FineUnpaid, Reason: "late"},
	}}
	journal := &stubRecorder{}
	h := newFineHandler(api, journal)

	c, rec := postForm(e, "/librarian/fines/1/pay", url.Values{
		"payment":    {"5"},
		"amount":     {"5"},
		"amountPaid": {"0"},
		"status":     {"UNPAID"},
	})
	c.SetParamNames("id")
	c.SetParamValues("1")
	signIn(c, librarian)

	if err := h.Pay(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Payment of 5.00 recorded.") {
		t.Fatalf("expected success banner, got %s", body)
	}
	if !strings.Contains(body, `data-dismiss-ms="3000"`) {
		t.Fatal("expected success banner to auto-dismiss")
	}
	if len(journal.entries) != 1 || journal.entries[0].Action != "fine.pay" {
		t.Fatalf("expected one fine.pay journal entry, got %+v", journal.entries)
	}
}

func TestFineHandler_Mine_ScopedToMember(t *testing.T) {
	e := newTestEcho(t)
	api := &stubFineAPI{fines: []domain.Fine{
		{ID: 1, MemberID: 7, Amount: 5, Status: domain.FineUnpaid, Reason: "late return"},
		{ID: 2, MemberID: 8, Amount: 9, Status: domain.FineUnpaid, Reason: "lost book"},
	}}
	h := newFineHandler(api, &stubRecorder{})

	c, rec := get(e, "/member/fines")
	signIn(c, member)

	if err := h.Mine(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(api.byMember) != 1 || api.byMember[0] != 7 {
		t.Fatalf("expected fines listed for member 7, got %v", api.byMember)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "late return") || strings.Contains(body, "lost book") {
		t.Fatalf("member sees fines outside their account: %s", body)
	}
	if strings.Contains(body, "/librarian/fines/1/pay") {
		t.Fatal("member view must not offer payment forms")
	}
}

func TestFineHandler_Mine_WithoutMemberIDFailsClosed(t *testing.T) {
	e := newTestEcho(t)
	api := &stubFineAPI{fines: []domain.Fine{
		{ID: 1, MemberID: 7, Amount: 5, Status: domain.FineUnpaid, Reason: "late return"},
		{ID: 2, MemberID: 8, Amount: 9, Status: domain.FineUnpaid, Reason: "lost book"},
	}}
	h := newFineHandler(api, &stubRecorder{})

	c, _ := get(e, "/member/fines")
	signIn(c, unlinked)

	err := h.Mine(c)
	if !errors.Is(err, domain.ErrNoMemberAccount) {
		t.Fatalf("expected ErrNoMemberAccount, got %v", err)
	}
	if api.listCalls != 0 || len(api.byMember) != 0 {
		t.Fatalf("no fines may be loaded, got list=%d byMember=%v", api.listCalls, api.byMember)
	}
	if flashStatus(err) != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", flashStatus(err))
	}
}
