package uidfield

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestMount_RequiredEmptyGeneratesAndAdoptsAsInitial(t *testing.T) {
	t.Parallel()

	h := newHarness(t, Options{Required: true, TargetField: "title"})
	h.svc.generate = func(GenerateRequest) (string, error) { return "article-1", nil }

	h.do(h.c.Mount(creation()))
	if !h.c.Loading() || h.c.State().Phase != PhaseGenerating {
		t.Fatalf("expected generating right after mount; got loading=%v phase=%s", h.c.Loading(), h.c.State().Phase)
	}
	h.flush()

	if got := h.svc.generateCount(); got != 1 {
		t.Fatalf("expected exactly one generate call, got %d", got)
	}
	if got := h.c.Value(); got != "article-1" {
		t.Fatalf("expected value from server; got %q", got)
	}
	ch := h.lastChange()
	if !ch.adopt || ch.ev.Value != "article-1" || ch.ev.Name != "slug" || ch.ev.Type != "text" {
		t.Fatalf("unexpected change callback: %+v", ch)
	}
	if h.c.Loading() {
		t.Fatalf("expected loading to be off after completion")
	}

	// The generated value is the new baseline, so the debounced value doesn't trigger a check.
	h.advance(DefaultDebounce)
	h.flush()
	if got := h.svc.checkCount(); got != 0 {
		t.Fatalf("expected no availability check for the adopted value, got %d", got)
	}
}

func TestMount_NotRequiredDoesNotGenerate(t *testing.T) {
	t.Parallel()

	h := newHarness(t, Options{TargetField: "title"})
	h.do(h.c.Mount(creation()))
	h.flush()
	if got := h.svc.generateCount(); got != 0 {
		t.Fatalf("expected no generate call, got %d", got)
	}
	if !h.c.Creating() {
		t.Fatalf("expected creation mode for empty initial data")
	}
}

func TestUserChange_ChecksAfterDebounceAndOpensSuggestion(t *testing.T) {
	t.Parallel()

	h := newHarness(t, Options{})
	h.svc.check = func(req CheckRequest) (Availability, error) {
		return Availability{IsAvailable: false, Suggestion: "my-post-2"}, nil
	}
	h.do(h.c.Mount(creation()))
	h.flush()

	h.do(h.c.UserChange("my-post"))
	if got := h.lastChange(); got.ev.Value != "my-post" || got.adopt {
		t.Fatalf("expected synchronous propagation of raw value; got %+v", got)
	}
	h.flush()
	if got := h.svc.checkCount(); got != 0 {
		t.Fatalf("user change must not call the server directly; got %d checks", got)
	}

	h.advance(DefaultDebounce - time.Millisecond)
	h.flush()
	if got := h.svc.checkCount(); got != 0 {
		t.Fatalf("expected no check before the debounce window elapsed; got %d", got)
	}

	h.advance(time.Millisecond)
	if h.c.State().Phase != PhaseChecking {
		t.Fatalf("expected checking phase; got %s", h.c.State().Phase)
	}
	h.flush()

	if got := h.svc.checkCount(); got != 1 {
		t.Fatalf("expected one check, got %d", got)
	}
	req := h.svc.checked[0]
	if req.Value == nil || *req.Value != "my-post" || req.Field != "slug" || req.ContentTypeUID != "application::article.article" {
		t.Fatalf("unexpected check request: %+v", req)
	}
	if !h.c.SuggestionOpen() {
		t.Fatalf("expected suggestion to be open")
	}
	av := h.c.Availability()
	if av == nil || av.IsAvailable || av.Suggestion != "my-post-2" {
		t.Fatalf("unexpected availability: %+v", av)
	}
	st := h.c.State()
	if st.Phase != PhaseSuggesting || st.Suggestion != "my-post-2" || !st.Open {
		t.Fatalf("unexpected state: %+v", st)
	}

	// Accepting the suggestion closes the dropdown and propagates the value.
	h.do(h.c.AcceptSuggestion())
	if got := h.c.Value(); got != "my-post-2" {
		t.Fatalf("expected accepted suggestion as value; got %q", got)
	}
	if h.c.SuggestionOpen() {
		t.Fatalf("expected suggestion closed after accept")
	}
	if ch := h.lastChange(); ch.ev.Value != "my-post-2" || ch.adopt {
		t.Fatalf("unexpected change after accept: %+v", ch)
	}
	if h.c.Customized() {
		t.Fatalf("accepting a suggestion is not user customization")
	}
}

func TestUserChange_RapidEditsCoalesceIntoOneCheck(t *testing.T) {
	t.Parallel()

	h := newHarness(t, Options{})
	h.do(h.c.Mount(creation()))
	h.flush()

	for _, v := range []string{"m", "my", "my-p", "my-po", "my-post"} {
		h.do(h.c.UserChange(v))
		h.advance(100 * time.Millisecond)
	}
	h.flush()
	if got := h.svc.checkCount(); got != 0 {
		t.Fatalf("expected no check while typing; got %d", got)
	}

	h.advance(DefaultDebounce)
	h.flush()
	if got := h.svc.checkCount(); got != 1 {
		t.Fatalf("expected exactly one check, got %d", got)
	}
	if v := h.svc.checked[0].Value; v == nil || *v != "my-post" {
		t.Fatalf("expected check for the final value; got %v", v)
	}
}

func TestUserChange_EmptyClearsAvailability(t *testing.T) {
	t.Parallel()

	h := newHarness(t, Options{})
	h.svc.check = func(CheckRequest) (Availability, error) { return Availability{IsAvailable: false}, nil }
	h.do(h.c.Mount(creation()))
	h.flush()

	h.do(h.c.UserChange("taken"))
	h.advance(DefaultDebounce)
	h.flush()
	if av := h.c.Availability(); av == nil || av.IsAvailable {
		t.Fatalf("expected unavailable result; got %+v", av)
	}

	h.do(h.c.UserChange(""))
	h.advance(DefaultDebounce)
	h.flush()
	if av := h.c.Availability(); av != nil {
		t.Fatalf("expected availability cleared for empty value; got %+v", av)
	}
	if got := h.svc.checkCount(); got != 1 {
		t.Fatalf("expected no check for empty value; got %d checks", got)
	}
}

func TestUserChange_EmptyDropsInFlightCheck(t *testing.T) {
	t.Parallel()

	h := newHarness(t, Options{})
	h.svc.check = func(CheckRequest) (Availability, error) { return Availability{Suggestion: "late-2"}, nil }
	h.do(h.c.Mount(creation()))
	h.flush()

	h.do(h.c.UserChange("late"))
	h.advance(DefaultDebounce)
	inflight := h.take()

	h.do(h.c.UserChange(""))
	h.advance(DefaultDebounce)
	h.flush()

	for _, cmd := range inflight {
		h.deliver(cmd())
	}
	h.flush()
	if av := h.c.Availability(); av != nil {
		t.Fatalf("stale check result must not resurrect availability; got %+v", av)
	}
	if h.c.Loading() {
		t.Fatalf("expected loading off")
	}
}

func TestUserChange_RevertWhileCheckInFlightChecksAgain(t *testing.T) {
	t.Parallel()

	h := newHarness(t, Options{})
	h.do(h.c.Mount(creation()))
	h.flush()

	h.do(h.c.UserChange("abc"))
	h.advance(DefaultDebounce)
	inflight := h.take()
	if len(inflight) != 1 || !h.c.Loading() {
		t.Fatalf("expected one check in flight; got %d cmds, loading=%v", len(inflight), h.c.Loading())
	}

	h.do(h.c.UserChange("abcd"))
	h.advance(100 * time.Millisecond)
	h.do(h.c.UserChange("abc"))
	h.advance(DefaultDebounce)
	h.flush()

	if got := h.svc.checkCount(); got != 1 {
		t.Fatalf("expected the settled value to be checked again; got %d checks", got)
	}
	if req := h.svc.checked[0]; req.Value == nil || *req.Value != "abc" {
		t.Fatalf("unexpected check request: %+v", req)
	}
	if av := h.c.Availability(); av == nil || !av.IsAvailable {
		t.Fatalf("expected availability for the reverted value; got %+v", av)
	}

	// The superseded response is still dropped.
	for _, cmd := range inflight {
		h.deliver(cmd())
	}
	h.flush()
	if h.c.Loading() {
		t.Fatalf("expected loading off")
	}
}

func TestUserChange_RevertAfterSettledCheckKeepsResult(t *testing.T) {
	t.Parallel()

	h := newHarness(t, Options{})
	h.svc.check = func(CheckRequest) (Availability, error) { return Availability{Suggestion: "abc-1"}, nil }
	h.do(h.c.Mount(creation()))
	h.flush()

	h.do(h.c.UserChange("abc"))
	h.advance(DefaultDebounce)
	h.flush()

	h.do(h.c.UserChange("abcd"))
	h.advance(100 * time.Millisecond)
	h.do(h.c.UserChange("abc"))
	h.advance(DefaultDebounce)
	h.flush()

	if got := h.svc.checkCount(); got != 1 {
		t.Fatalf("expected no second check for an already settled value; got %d", got)
	}
	if av := h.c.Availability(); av == nil || av.Suggestion != "abc-1" {
		t.Fatalf("expected the settled result kept; got %+v", av)
	}
}

func TestSourceField_GeneratesWhileCreatingAndNotCustomized(t *testing.T) {
	t.Parallel()

	h := newHarness(t, Options{TargetField: "title"})
	h.svc.generate = func(req GenerateRequest) (string, error) {
		return fmt.Sprintf("%v", req.Data["title"]), nil
	}
	h.do(h.c.Mount(creation()))
	h.flush()

	h.do(h.c.SetRecord(Record{"title": "hello"}))
	h.advance(100 * time.Millisecond)
	h.do(h.c.SetRecord(Record{"title": "hello-world"}))
	h.advance(DefaultDebounce)
	h.flush()

	if got := h.svc.generateCount(); got != 1 {
		t.Fatalf("expected one generate after debounce, got %d", got)
	}
	req := h.svc.generated[0]
	if req.Data["title"] != "hello-world" {
		t.Fatalf("expected record snapshot in generate request; got %+v", req.Data)
	}
	if got := h.c.Value(); got != "hello-world" {
		t.Fatalf("expected generated value; got %q", got)
	}
	if ch := h.lastChange(); ch.adopt {
		t.Fatalf("source-driven generation must not adopt as initial")
	}
}

func TestSourceField_CustomizedValueIsNeverOverwritten(t *testing.T) {
	t.Parallel()

	h := newHarness(t, Options{TargetField: "title"})
	h.do(h.c.Mount(creation()))
	h.flush()

	h.do(h.c.UserChange("my-own"))
	if !h.c.Customized() {
		t.Fatalf("expected customized after non-empty input in creation mode")
	}
	for _, title := range []string{"a", "ab", "abc"} {
		h.do(h.c.SetRecord(Record{"title": title}))
		h.advance(DefaultDebounce)
		h.flush()
	}
	if got := h.svc.generateCount(); got != 0 {
		t.Fatalf("expected no generation after customization, got %d", got)
	}
	if got := h.c.Value(); got != "my-own" {
		t.Fatalf("expected customized value kept; got %q", got)
	}

	// Clearing the field doesn't undo customization.
	h.do(h.c.UserChange(""))
	h.do(h.c.SetRecord(Record{"title": "abcd"}))
	h.advance(DefaultDebounce)
	h.flush()
	if got := h.svc.generateCount(); got != 0 {
		t.Fatalf("expected no generation after clearing a customized field, got %d", got)
	}
}

func TestSourceField_IgnoredWhenEditingExistingRecord(t *testing.T) {
	t.Parallel()

	h := newHarness(t, Options{TargetField: "title"})
	h.do(h.c.Mount(Snapshot{
		Initial:  Record{"title": "Old", "slug": "old"},
		Modified: Record{"title": "Old", "slug": "old"},
	}))
	h.flush()

	h.do(h.c.SetRecord(Record{"title": "New", "slug": "old"}))
	h.advance(DefaultDebounce)
	h.flush()
	if got := h.svc.generateCount(); got != 0 {
		t.Fatalf("expected no generation outside creation mode, got %d", got)
	}
}

func TestAvailable_AutoDismissesAfterTTL(t *testing.T) {
	t.Parallel()

	h := newHarness(t, Options{})
	h.do(h.c.Mount(creation()))
	h.flush()

	h.do(h.c.UserChange("unique-slug"))
	h.advance(DefaultDebounce)
	h.flush()
	if av := h.c.Availability(); av == nil || !av.IsAvailable {
		t.Fatalf("expected available; got %+v", av)
	}

	h.advance(DefaultAvailableTTL - time.Millisecond)
	if av := h.c.Availability(); av == nil {
		t.Fatalf("expected availability still shown before the TTL")
	}
	h.advance(time.Millisecond)
	if av := h.c.Availability(); av != nil {
		t.Fatalf("expected availability reset after TTL; got %+v", av)
	}
	if h.c.State().Phase != PhaseIdle {
		t.Fatalf("expected idle; got %s", h.c.State().Phase)
	}
}

func TestAvailable_WithSuggestionKeepsVerdictAndAutoDismisses(t *testing.T) {
	t.Parallel()

	h := newHarness(t, Options{})
	h.svc.check = func(CheckRequest) (Availability, error) {
		return Availability{IsAvailable: true, Suggestion: "my-post-2"}, nil
	}
	h.do(h.c.Mount(creation()))
	h.flush()

	h.do(h.c.UserChange("my-post"))
	h.advance(DefaultDebounce)
	h.flush()
	av := h.c.Availability()
	if av == nil || !av.IsAvailable || av.Suggestion != "my-post-2" {
		t.Fatalf("expected the server's verdict unchanged; got %+v", av)
	}
	if !h.c.SuggestionOpen() {
		t.Fatalf("expected suggestion open")
	}

	h.advance(DefaultAvailableTTL + time.Millisecond)
	if av := h.c.Availability(); av != nil {
		t.Fatalf("expected available result with suggestion reset after TTL; got %+v", av)
	}
	if h.c.SuggestionOpen() {
		t.Fatalf("expected dropdown gone with the result")
	}
}

func TestAvailable_DismissTimerIsCancelledBySupersedingResult(t *testing.T) {
	t.Parallel()

	h := newHarness(t, Options{})
	results := []Availability{{IsAvailable: true}, {IsAvailable: true}}
	h.svc.check = func(CheckRequest) (Availability, error) {
		r := results[0]
		results = results[1:]
		return r, nil
	}
	h.do(h.c.Mount(creation()))
	h.flush()

	h.do(h.c.UserChange("first"))
	h.advance(DefaultDebounce)
	h.flush()

	// Second result lands 2s into the first one's TTL.
	h.advance(2 * time.Second)
	h.do(h.c.UserChange("second"))
	h.advance(DefaultDebounce)
	h.flush()

	// The first timer's deadline passes; the newer result must stay.
	h.advance(2 * time.Second)
	if av := h.c.Availability(); av == nil || !av.IsAvailable {
		t.Fatalf("expected newer result to survive the stale timer; got %+v", av)
	}
	h.advance(DefaultAvailableTTL)
	if av := h.c.Availability(); av != nil {
		t.Fatalf("expected newer result dismissed after its own TTL; got %+v", av)
	}
}

func TestSuggestion_ForcedOpenEvenAfterClickOutside(t *testing.T) {
	t.Parallel()

	h := newHarness(t, Options{})
	h.svc.check = func(req CheckRequest) (Availability, error) {
		return Availability{Suggestion: *req.Value + "-1"}, nil
	}
	h.do(h.c.Mount(creation()))
	h.flush()

	h.do(h.c.UserChange("post"))
	h.advance(DefaultDebounce)
	h.flush()

	h.c.ClickOutside()
	if h.c.SuggestionOpen() {
		t.Fatalf("expected closed after click outside")
	}
	if av := h.c.Availability(); !av.HasSuggestion() {
		t.Fatalf("click outside must keep availability; got %+v", av)
	}

	h.do(h.c.UserChange("post-x"))
	h.advance(DefaultDebounce)
	h.flush()
	if !h.c.SuggestionOpen() {
		t.Fatalf("expected a new suggestion to force the dropdown open")
	}
	if got := h.c.Availability().Suggestion; got != "post-x-1" {
		t.Fatalf("unexpected suggestion %q", got)
	}
}

func TestFocus_ReopensSuggestion(t *testing.T) {
	t.Parallel()

	h := newHarness(t, Options{})
	h.svc.check = func(CheckRequest) (Availability, error) { return Availability{Suggestion: "x-2"}, nil }
	h.do(h.c.Mount(creation()))
	h.flush()

	h.c.Focus()
	if h.c.SuggestionOpen() {
		t.Fatalf("focus without a suggestion must not open anything")
	}

	h.do(h.c.UserChange("x"))
	h.advance(DefaultDebounce)
	h.flush()
	h.c.ClickOutside()
	h.c.Focus()
	if !h.c.SuggestionOpen() {
		t.Fatalf("expected focus to reopen the suggestion")
	}
}

func TestAcceptSuggestion_WithoutSuggestionIsNoop(t *testing.T) {
	t.Parallel()

	h := newHarness(t, Options{})
	h.do(h.c.Mount(creation()))
	h.flush()
	if cmd := h.c.AcceptSuggestion(); cmd != nil {
		t.Fatalf("expected nil cmd")
	}
	if len(h.changes) != 0 {
		t.Fatalf("expected no change callbacks; got %d", len(h.changes))
	}
}

func TestDebouncedValue_EqualToInitialSkipsCheck(t *testing.T) {
	t.Parallel()

	h := newHarness(t, Options{})
	h.do(h.c.Mount(Snapshot{
		Initial:  Record{"slug": "existing"},
		Modified: Record{"slug": "existing"},
	}))
	h.flush()
	if got := h.svc.checkCount(); got != 0 {
		t.Fatalf("expected no check at mount for the initial value; got %d", got)
	}

	h.do(h.c.UserChange("existing-2"))
	h.advance(DefaultDebounce)
	h.flush()
	h.do(h.c.UserChange("existing"))
	h.advance(DefaultDebounce)
	h.flush()

	if got := h.svc.checkCount(); got != 1 {
		t.Fatalf("expected only the non-baseline value to be checked; got %d", got)
	}
	if v := h.svc.checked[0].Value; *v != "existing-2" {
		t.Fatalf("unexpected checked value %q", *v)
	}
}

func TestDebouncedValue_ShapeMismatchSkipsCheck(t *testing.T) {
	t.Parallel()

	h := newHarness(t, Options{})
	h.do(h.c.Mount(creation()))
	h.flush()

	h.do(h.c.UserChange("has spaces/slash"))
	h.advance(DefaultDebounce)
	h.flush()
	if got := h.svc.checkCount(); got != 0 {
		t.Fatalf("expected no check for a value that fails the shape; got %d", got)
	}
}

func TestCheck_BlankValueIsSentAsNull(t *testing.T) {
	t.Parallel()

	h := newHarness(t, Options{})
	h.do(h.c.Mount(creation()))
	h.flush()

	h.do(h.c.UserChange("   "))
	h.advance(DefaultDebounce)
	h.flush()
	if got := h.svc.checkCount(); got != 1 {
		t.Fatalf("expected one check, got %d", got)
	}
	if v := h.svc.checked[0].Value; v != nil {
		t.Fatalf("expected null value for blank input; got %q", *v)
	}
}

func TestGenerate_FailureKeepsValueAndLogs(t *testing.T) {
	t.Parallel()

	h := newHarness(t, Options{Editable: true})
	h.svc.generate = func(GenerateRequest) (string, error) { return "", errors.New("boom") }
	h.do(h.c.Mount(Snapshot{Initial: Record{"slug": "keep"}, Modified: Record{"slug": "keep"}}))
	h.flush()

	h.do(h.c.Regenerate())
	if !h.c.Loading() {
		t.Fatalf("expected loading while generating")
	}
	h.flush()

	if got := h.c.Value(); got != "keep" {
		t.Fatalf("expected value unchanged on failure; got %q", got)
	}
	if h.c.Loading() {
		t.Fatalf("expected loading off after failure")
	}
	if len(h.changes) != 0 {
		t.Fatalf("expected no change callback on failure")
	}
	if h.c.Err() != nil {
		t.Fatalf("transport failures are not field errors; got %v", h.c.Err())
	}
	entries := h.logs.FilterField(zap.String("action", "uid.generate")).All()
	if len(entries) != 1 {
		t.Fatalf("expected one logged failure, got %d", len(entries))
	}
}

func TestCheck_FailureKeepsAvailability(t *testing.T) {
	t.Parallel()

	h := newHarness(t, Options{})
	fail := false
	h.svc.check = func(CheckRequest) (Availability, error) {
		if fail {
			return Availability{}, errors.New("server down")
		}
		return Availability{Suggestion: "a-2"}, nil
	}
	h.do(h.c.Mount(creation()))
	h.flush()

	h.do(h.c.UserChange("a"))
	h.advance(DefaultDebounce)
	h.flush()

	fail = true
	h.do(h.c.UserChange("b"))
	h.advance(DefaultDebounce)
	h.flush()

	av := h.c.Availability()
	if av == nil || av.Suggestion != "a-2" {
		t.Fatalf("expected previous availability preserved; got %+v", av)
	}
	if h.c.Loading() {
		t.Fatalf("expected loading off")
	}
	if n := h.logs.FilterField(zap.String("action", "uid.check_availability")).Len(); n != 1 {
		t.Fatalf("expected one logged check failure, got %d", n)
	}
}

func TestGenerate_StaleResultDroppedAfterUserEdit(t *testing.T) {
	t.Parallel()

	h := newHarness(t, Options{Editable: true})
	h.do(h.c.Mount(Snapshot{Initial: Record{"slug": "a"}, Modified: Record{"slug": "a"}}))
	h.flush()

	h.do(h.c.Regenerate())
	inflight := h.take()
	h.do(h.c.UserChange("typed"))

	for _, cmd := range inflight {
		h.deliver(cmd())
	}
	if got := h.c.Value(); got != "typed" {
		t.Fatalf("expected user input to win over a stale generation; got %q", got)
	}
}

func TestCheck_OnlyLatestResponseApplies(t *testing.T) {
	t.Parallel()

	h := newHarness(t, Options{Editable: true})
	h.svc.check = func(req CheckRequest) (Availability, error) {
		return Availability{Suggestion: *req.Value + "-2"}, nil
	}
	h.do(h.c.Mount(creation()))
	h.flush()

	h.do(h.c.UserChange("one"))
	h.advance(DefaultDebounce)
	first := h.take()

	// A regenerate lands and its value is checked while the first check is still out.
	h.svc.generate = func(GenerateRequest) (string, error) { return "two", nil }
	h.do(h.c.Regenerate())
	h.flush()
	h.advance(DefaultDebounce)
	second := h.take()

	for _, cmd := range second {
		h.deliver(cmd())
	}
	h.flush()
	for _, cmd := range first {
		h.deliver(cmd())
	}
	h.flush()

	if got := h.c.Availability().Suggestion; got != "two-2" {
		t.Fatalf("expected latest check to win; got %q", got)
	}
}

func TestUnmount_DropsTimersAndInflightResults(t *testing.T) {
	t.Parallel()

	h := newHarness(t, Options{})
	h.do(h.c.Mount(creation()))
	h.flush()

	h.do(h.c.UserChange("avail"))
	h.advance(DefaultDebounce)
	h.flush()
	if h.c.Availability() == nil {
		t.Fatalf("expected availability before unmount")
	}

	h.do(h.c.UserChange("next"))
	h.advance(DefaultDebounce)
	inflight := h.take()

	h.c.Unmount()
	for _, cmd := range inflight {
		h.deliver(cmd())
	}
	h.advance(DefaultAvailableTTL)
	if av := h.c.Availability(); av == nil || !av.IsAvailable {
		t.Fatalf("expected state frozen after unmount; got %+v", av)
	}
	if cmd := h.c.UserChange("ignored"); cmd != nil {
		t.Fatalf("expected no commands after unmount")
	}
}

func TestRegenerate_ReadOnlyFieldIsNoop(t *testing.T) {
	t.Parallel()

	h := newHarness(t, Options{Editable: false})
	h.do(h.c.Mount(creation()))
	h.flush()
	if cmd := h.c.Regenerate(); cmd != nil {
		t.Fatalf("expected nil cmd for read-only field")
	}
	if got := h.svc.generateCount(); got != 0 {
		t.Fatalf("expected no generate call, got %d", got)
	}
}

func TestHoverRegenerate_SetsAndClearsLabel(t *testing.T) {
	t.Parallel()

	h := newHarness(t, Options{Editable: true})
	h.c.HoverRegenerate(true)
	if got := h.c.HoverLabel(); got != HoverRegenerate {
		t.Fatalf("expected hover label; got %q", got)
	}
	h.c.HoverRegenerate(false)
	if got := h.c.HoverLabel(); got != "" {
		t.Fatalf("expected hover label cleared; got %q", got)
	}
}

func TestUserChange_ClearsFieldError(t *testing.T) {
	t.Parallel()

	h := newHarness(t, Options{Required: true})
	h.c.SetErr(errors.New("taken"))
	h.do(h.c.UserChange("x"))
	if h.c.Err() != nil {
		t.Fatalf("expected error cleared on change; got %v", h.c.Err())
	}

	h.do(h.c.UserChange(""))
	if err := h.c.Validate(); !errors.Is(err, ValidationError{Reason: ReasonRequired}) {
		t.Fatalf("expected required error; got %v", err)
	}
	if h.c.Err() == nil {
		t.Fatalf("expected Validate to store the error")
	}
}
