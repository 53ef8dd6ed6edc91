// ABOUTME: Tests for ColumnValue: the type-gating grid, dirty-flag lifecycle,
// ABOUTME: setter validation, remote hydration, and getter projections.
package monday

import (
	"errors"
	"testing"
	"time"
)

func cellOfType(typ ColumnType) *ColumnValue {
	return &ColumnValue{id: string(typ) + "_col", title: string(typ) + " column", typ: typ}
}

func wantValidationError(t *testing.T, err error) {
	t.Helper()
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
}

func TestTypeGatingForSettersAndGetters(t *testing.T) {
	when := time.Date(2020, 6, 1, 12, 30, 0, 0, time.UTC)

	accessors := map[ColumnType]func(cv *ColumnValue) error{
		ColumnCheckbox: func(cv *ColumnValue) error { return cv.SetCheckbox(true) },
		ColumnCountry:  func(cv *ColumnValue) error { return cv.SetCountry("US") },
		ColumnDate:     func(cv *ColumnValue) error { return cv.SetDate(when) },
		ColumnDropdown: func(cv *ColumnValue) error { return cv.SetDropdown("label") },
		ColumnEmail:    func(cv *ColumnValue) error { return cv.SetEmail("a@example.com", "") },
		ColumnHour:     func(cv *ColumnValue) error { return cv.SetHour(9, 30) },
		ColumnName:     func(cv *ColumnValue) error { return cv.SetName("a name") },
		ColumnLink:     func(cv *ColumnValue) error { return cv.SetLink("https://example.com", "") },
		ColumnLongText: func(cv *ColumnValue) error { return cv.SetLongText("text") },
		ColumnNumber:   func(cv *ColumnValue) error { return cv.SetNumber(42) },
		ColumnPeople:   func(cv *ColumnValue) error { return cv.SetPeople(11) },
		ColumnPhone:    func(cv *ColumnValue) error { return cv.SetPhone("4155551234", "US") },
		ColumnRating:   func(cv *ColumnValue) error { return cv.SetRating(3) },
		ColumnStatus:   func(cv *ColumnValue) error { return cv.SetStatus("Done") },
		ColumnTags:     func(cv *ColumnValue) error { return cv.SetTags("bugfix") },
		ColumnText:     func(cv *ColumnValue) error { return cv.SetText("text") },
		ColumnTimeline: func(cv *ColumnValue) error { return cv.SetTimeline(when, when.Add(time.Hour)) },
		ColumnWeek:     func(cv *ColumnValue) error { return cv.SetWeek(when, 0) },
	}

	getters := map[ColumnType]func(cv *ColumnValue) error{
		ColumnCheckbox: func(cv *ColumnValue) error { _, err := cv.Checkbox(); return err },
		ColumnCountry:  func(cv *ColumnValue) error { _, err := cv.Country(); return err },
		ColumnDate:     func(cv *ColumnValue) error { _, err := cv.Date(); return err },
		ColumnDropdown: func(cv *ColumnValue) error { _, err := cv.Dropdown(); return err },
		ColumnEmail:    func(cv *ColumnValue) error { _, err := cv.Email(); return err },
		ColumnHour:     func(cv *ColumnValue) error { _, err := cv.Hour(); return err },
		ColumnName:     func(cv *ColumnValue) error { _, err := cv.Name(); return err },
		ColumnLink:     func(cv *ColumnValue) error { _, err := cv.Link(); return err },
		ColumnLongText: func(cv *ColumnValue) error { _, err := cv.LongText(); return err },
		ColumnNumber:   func(cv *ColumnValue) error { _, err := cv.Number(); return err },
		ColumnPeople:   func(cv *ColumnValue) error { _, err := cv.People(); return err },
		ColumnPhone:    func(cv *ColumnValue) error { _, err := cv.Phone(); return err },
		ColumnRating:   func(cv *ColumnValue) error { _, err := cv.Rating(); return err },
		ColumnStatus:   func(cv *ColumnValue) error { _, err := cv.Status(); return err },
		ColumnTags:     func(cv *ColumnValue) error { _, err := cv.Tags(); return err },
		ColumnText:     func(cv *ColumnValue) error { _, err := cv.Text(); return err },
	}

	types := make([]ColumnType, 0, len(accessors))
	for typ := range accessors {
		types = append(types, typ)
	}

	for declared, call := range accessors {
		for _, actual := range types {
			if actual == declared {
				continue
			}
			cv := cellOfType(actual)
			err := call(cv)
			var mismatch *TypeMismatchError
			if !errors.As(err, &mismatch) {
				t.Errorf("setter for %s on a %s cell: want TypeMismatchError, got %v", declared, actual, err)
			}
		}
	}

	for declared, call := range getters {
		for _, actual := range types {
			if actual == declared {
				continue
			}
			cv := cellOfType(actual)
			err := call(cv)
			var mismatch *TypeMismatchError
			if !errors.As(err, &mismatch) {
				t.Errorf("getter for %s on a %s cell: want TypeMismatchError, got %v", declared, actual, err)
			}
		}
	}
}

func TestDirtyFlagLifecycle(t *testing.T) {
	info := columnValueInfo{
		ID:    Present("notes"),
		Type:  Present(string(ColumnText)),
		Title: Present("Notes"),
		Value: Present(`"hello"`),
	}
	cv := newColumnValue(nil, info)

	if cv.Changed() {
		t.Error("construction from remote data must not mark the cell changed")
	}

	if err := cv.SetText("edited"); err != nil {
		t.Fatalf("SetText failed: %v", err)
	}
	if !cv.Changed() {
		t.Error("a setter call must mark the cell changed")
	}

	cv.updateWithRemoteData(info)
	if cv.Changed() {
		t.Error("remote hydration must clear the changed flag")
	}
	if got, _ := cv.Text(); got != "hello" {
		t.Errorf("hydrated value: got %q, want %q", got, "hello")
	}
}

func TestUpdateWithRemoteDataMergesByPresence(t *testing.T) {
	cv := newColumnValue(nil, columnValueInfo{
		ID:    Present("notes"),
		Type:  Present(string(ColumnText)),
		Title: Present("Notes"),
		Value: Present(`"hello"`),
	})

	// A partial payload without id/type/title keeps identity but replaces
	// the value; a null value empties the cell.
	cv.updateWithRemoteData(columnValueInfo{Value: Optional[string]{Set: true}})

	if cv.ID() != "notes" || cv.Type() != ColumnText || cv.Title() != "Notes" {
		t.Error("absent identity fields must not be overwritten")
	}
	if cv.Value() != nil {
		t.Errorf("null remote value must empty the cell, got %v", cv.Value())
	}
}

func TestSetParsesStringsWithRawFallback(t *testing.T) {
	cv := cellOfType(ColumnStatus)

	cv.Set(`{"label": "Done"}`)
	status, err := cv.Status()
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if status.Label != "Done" {
		t.Errorf("parsed label: got %q", status.Label)
	}

	cv.Set(`not json at all`)
	if got, ok := cv.Value().(string); !ok || got != "not json at all" {
		t.Errorf("unparseable input must be stored raw, got %v", cv.Value())
	}
	if !cv.Changed() {
		t.Error("Set must always mark the cell changed")
	}
}

func TestSetterValidation(t *testing.T) {
	when := time.Date(2021, 3, 14, 9, 26, 53, 0, time.UTC)

	cases := map[string]func() error{
		"country code too long":   func() error { return cellOfType(ColumnCountry).SetCountry("USA") },
		"country code unknown":    func() error { return cellOfType(ColumnCountry).SetCountry("ZZ") },
		"zero date":               func() error { return cellOfType(ColumnDate).SetDate(time.Time{}) },
		"no dropdown labels":      func() error { return cellOfType(ColumnDropdown).SetDropdown() },
		"empty dropdown label":    func() error { return cellOfType(ColumnDropdown).SetDropdown("") },
		"bad email":               func() error { return cellOfType(ColumnEmail).SetEmail("not-an-email", "") },
		"hour out of range":       func() error { return cellOfType(ColumnHour).SetHour(24, 0) },
		"minute out of range":     func() error { return cellOfType(ColumnHour).SetHour(12, 60) },
		"empty name":              func() error { return cellOfType(ColumnName).SetName("") },
		"empty url":               func() error { return cellOfType(ColumnLink).SetLink("", "") },
		"empty long text":         func() error { return cellOfType(ColumnLongText).SetLongText("") },
		"nan number":              func() error { return cellOfType(ColumnNumber).SetNumber(nan()) },
		"no people":               func() error { return cellOfType(ColumnPeople).SetPeople() },
		"phone not digits":        func() error { return cellOfType(ColumnPhone).SetPhone("call me", "US") },
		"phone bad country":       func() error { return cellOfType(ColumnPhone).SetPhone("4155551234", "ZZ") },
		"rating below one":        func() error { return cellOfType(ColumnRating).SetRating(0) },
		"empty status":            func() error { return cellOfType(ColumnStatus).SetStatus("") },
		"empty text":              func() error { return cellOfType(ColumnText).SetText("") },
		"timeline reversed":       func() error { return cellOfType(ColumnTimeline).SetTimeline(when.Add(time.Hour), when) },
		"week bad start day":      func() error { return cellOfType(ColumnWeek).SetWeek(when, 7) },
		"long text over the cap":  func() error { return cellOfType(ColumnLongText).SetLongText(longString(2001)) },
		"name over the cap":       func() error { return cellOfType(ColumnName).SetName(longString(256)) },
	}

	for name, call := range cases {
		t.Run(name, func(t *testing.T) {
			wantValidationError(t, call())
		})
	}
}

func TestTimelineAndWeekAreUnimplemented(t *testing.T) {
	when := time.Date(2021, 3, 14, 0, 0, 0, 0, time.UTC)

	err := cellOfType(ColumnTimeline).SetTimeline(when, when.Add(24*time.Hour))
	var unimpl *UnimplementedError
	if !errors.As(err, &unimpl) {
		t.Fatalf("timeline: want UnimplementedError, got %v", err)
	}

	err = cellOfType(ColumnWeek).SetWeek(when, 0)
	if !errors.As(err, &unimpl) {
		t.Fatalf("week: want UnimplementedError, got %v", err)
	}
}

func TestSettersConstructDocumentedPayloads(t *testing.T) {
	when := time.Date(2020, 6, 1, 12, 30, 45, 0, time.UTC)

	date := cellOfType(ColumnDate)
	if err := date.SetDate(when); err != nil {
		t.Fatalf("SetDate failed: %v", err)
	}
	got, _ := date.Date()
	if got.Date != "2020-06-01" || got.Time != "12:30:45" {
		t.Errorf("date payload: got %+v", got)
	}

	country := cellOfType(ColumnCountry)
	if err := country.SetCountry("DE"); err != nil {
		t.Fatalf("SetCountry failed: %v", err)
	}
	if v, _ := country.Country(); v.CountryName != "Germany" {
		t.Errorf("country payload: got %+v", v)
	}

	people := cellOfType(ColumnPeople)
	if err := people.SetPeople(11, 12); err != nil {
		t.Fatalf("SetPeople failed: %v", err)
	}
	v, _ := people.People()
	if len(v.PersonsAndTeams) != 2 || v.PersonsAndTeams[0].Kind != "person" {
		t.Errorf("people payload: got %+v", v)
	}

	number := cellOfType(ColumnNumber)
	if err := number.SetNumber(12.5); err != nil {
		t.Fatalf("SetNumber failed: %v", err)
	}
	if raw, ok := number.Value().(string); !ok || raw != "12.5" {
		t.Errorf("number payload must be a serialized string, got %v", number.Value())
	}
	if n, _ := number.Number(); n != 12.5 {
		t.Errorf("number round-trip: got %v", n)
	}

	phone := cellOfType(ColumnPhone)
	if err := phone.SetPhone("4155551234", ""); err != nil {
		t.Fatalf("SetPhone failed: %v", err)
	}
	if v, _ := phone.Phone(); v.CountryShortName != "US" {
		t.Errorf("empty country code must default to US, got %+v", v)
	}
}

func TestSetTagsResolvesAgainstAccountRegistry(t *testing.T) {
	account, _, _, item := testGraph(&scriptedExecutor{})
	account.tags = []*Tag{
		newTag(71, "bugfix", "red"),
		newTag(72, "feature", "green"),
	}
	cv := &ColumnValue{id: "tags", title: "Tags", typ: ColumnTags, item: item}
	item.values = append(item.values, cv)

	// Unresolvable names are dropped silently as long as something resolves.
	if err := cv.SetTags("BUGFIX", "no-such-tag"); err != nil {
		t.Fatalf("SetTags failed: %v", err)
	}
	tags, err := cv.Tags()
	if err != nil {
		t.Fatalf("Tags failed: %v", err)
	}
	if len(tags.TagIDs) != 1 || tags.TagIDs[0] != 71 {
		t.Errorf("tag ids: got %v, want [71]", tags.TagIDs)
	}

	// An entirely unresolvable set fails.
	wantValidationError(t, cv.SetTags("nope", "also-nope"))
}

func TestGetterProjectsHydratedGenericValue(t *testing.T) {
	// A cell hydrated before its type has a modeled payload holds a generic
	// document; the typed getter must still project it.
	cv := cellOfType(ColumnRating)
	cv.value = map[string]any{"rating": float64(4)}

	v, err := cv.Rating()
	if err != nil {
		t.Fatalf("Rating failed: %v", err)
	}
	if v.Rating != 4 {
		t.Errorf("projected rating: got %d, want 4", v.Rating)
	}
}

func TestGetterOnEmptyCellReturnsZeroPayload(t *testing.T) {
	cv := cellOfType(ColumnEmail)
	v, err := cv.Email()
	if err != nil {
		t.Fatalf("Email on empty cell failed: %v", err)
	}
	if v != (EmailValue{}) {
		t.Errorf("empty cell must project the zero payload, got %+v", v)
	}
}

func nan() float64 {
	var zero float64
	return zero / zero
}

func longString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'x'
	}
	return string(b)
}
