// ABOUTME: ColumnValue is an item's cell for one column: a typed read/write facade
// ABOUTME: over the per-type payload, with dirty tracking for push.
package monday

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Payload shapes, one per settable column type. Getters return exactly the
// shape the matching setter constructs.

// CheckboxValue is the payload for checkbox columns.
type CheckboxValue struct {
	Checked bool `json:"checked"`
}

// CountryValue is the payload for country columns.
type CountryValue struct {
	CountryCode string `json:"countryCode"`
	CountryName string `json:"countryName"`
}

// DateValue is the payload for date columns. Date and Time are separate
// UTC components, formatted 2006-01-02 and 15:04:05.
type DateValue struct {
	Date string `json:"date"`
	Time string `json:"time,omitempty"`
}

// DropdownValue is the payload for dropdown columns. Labels must already
// exist on the column.
type DropdownValue struct {
	Labels []string `json:"labels"`
}

// EmailValue is the payload for email columns.
type EmailValue struct {
	Email string `json:"email"`
	Text  string `json:"text,omitempty"`
}

// HourValue is the payload for hour columns.
type HourValue struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// LinkValue is the payload for link columns.
type LinkValue struct {
	URL  string `json:"url"`
	Text string `json:"text,omitempty"`
}

// LongTextValue is the payload for long-text columns.
type LongTextValue struct {
	Text string `json:"text"`
}

// PersonOrTeam is one entry in a people column's payload.
type PersonOrTeam struct {
	ID   int    `json:"id"`
	Kind string `json:"kind"`
}

// PeopleValue is the payload for people columns.
type PeopleValue struct {
	PersonsAndTeams []PersonOrTeam `json:"personsAndTeams"`
}

// PhoneValue is the payload for phone columns.
type PhoneValue struct {
	Phone            string `json:"phone"`
	CountryShortName string `json:"countryShortName"`
}

// RatingValue is the payload for rating columns.
type RatingValue struct {
	Rating int `json:"rating"`
}

// StatusValue is the payload for status columns. The label must already
// exist on the column.
type StatusValue struct {
	Label string `json:"label"`
}

// TagsValue is the payload for tag columns. IDs come from the account's
// tag registry.
type TagsValue struct {
	TagIDs []int `json:"tag_ids"`
}

// Name, text, and number columns carry a bare string payload rather than a
// structured record; their accessors work on string directly.

// columnValueInfo is the remote payload for one cell. Value is the cell's
// serialized payload, or null for an empty cell.
type columnValueInfo struct {
	ID    Optional[string] `json:"id"`
	Type  Optional[string] `json:"type"`
	Title Optional[string] `json:"title"`
	Value Optional[string] `json:"value"`
}

// ColumnValue is one item's data for one column. The type, fixed by the
// board schema, gates every typed accessor. Local writes set the changed
// flag; hydration from a remote response clears it.
type ColumnValue struct {
	id      string
	title   string
	typ     ColumnType
	item    *Item
	value   any
	changed bool
}

func newColumnValue(item *Item, info columnValueInfo) *ColumnValue {
	cv := &ColumnValue{item: item}
	cv.updateWithRemoteData(info)
	return cv
}

func (cv *ColumnValue) ID() string       { return cv.id }
func (cv *ColumnValue) Title() string    { return cv.title }
func (cv *ColumnValue) Type() ColumnType { return cv.typ }

// Changed reports whether the cell holds an unsynchronized local edit.
func (cv *ColumnValue) Changed() bool { return cv.changed }

// Value returns the current payload: a typed payload struct, a bare string,
// a generic decoded document for unmodeled column types, or nil for an
// empty cell.
func (cv *ColumnValue) Value() any { return cv.value }

// Set writes a payload directly. A string argument is parsed as serialized
// JSON first, falling back to storing the raw string unchanged when it does
// not parse; anything else is stored as given. Every call marks the cell
// changed.
func (cv *ColumnValue) Set(value any) {
	cv.setValue(value)
	cv.changed = true
}

func (cv *ColumnValue) setValue(value any) {
	if s, ok := value.(string); ok {
		cv.value = decodeValue(cv.typ, s)
		return
	}
	cv.value = value
}

// updateWithRemoteData merges a remote cell payload into the value. Identity
// fields apply only when the response carried them; the value is always
// overwritten. Hydration is by definition not a local change, so the changed
// flag is force-cleared afterward.
func (cv *ColumnValue) updateWithRemoteData(info columnValueInfo) {
	if v, ok := info.ID.Get(); ok {
		cv.id = v
	}
	if v, ok := info.Type.Get(); ok {
		cv.typ = ColumnType(v)
	}
	if v, ok := info.Title.Get(); ok {
		cv.title = v
	}
	if v, ok := info.Value.Get(); ok {
		cv.setValue(v)
	} else {
		cv.value = nil
	}
	cv.changed = false
}

// decodeValue parses a serialized cell payload into the structured shape for
// the column type. Unknown types decode generically; input that is not valid
// JSON is kept as the raw string.
func decodeValue(typ ColumnType, raw string) any {
	switch typ {
	case ColumnCheckbox:
		if v, err := decodeInto[CheckboxValue](raw); err == nil {
			return v
		}
	case ColumnCountry:
		if v, err := decodeInto[CountryValue](raw); err == nil {
			return v
		}
	case ColumnDate:
		if v, err := decodeInto[DateValue](raw); err == nil {
			return v
		}
	case ColumnDropdown:
		if v, err := decodeInto[DropdownValue](raw); err == nil {
			return v
		}
	case ColumnEmail:
		if v, err := decodeInto[EmailValue](raw); err == nil {
			return v
		}
	case ColumnHour:
		if v, err := decodeInto[HourValue](raw); err == nil {
			return v
		}
	case ColumnLink:
		if v, err := decodeInto[LinkValue](raw); err == nil {
			return v
		}
	case ColumnLongText:
		if v, err := decodeInto[LongTextValue](raw); err == nil {
			return v
		}
	case ColumnPeople:
		if v, err := decodeInto[PeopleValue](raw); err == nil {
			return v
		}
	case ColumnPhone:
		if v, err := decodeInto[PhoneValue](raw); err == nil {
			return v
		}
	case ColumnRating:
		if v, err := decodeInto[RatingValue](raw); err == nil {
			return v
		}
	case ColumnStatus:
		if v, err := decodeInto[StatusValue](raw); err == nil {
			return v
		}
	case ColumnTags:
		if v, err := decodeInto[TagsValue](raw); err == nil {
			return v
		}
	case ColumnName, ColumnText, ColumnNumber:
		if v, err := decodeInto[string](raw); err == nil {
			return v
		}
	}

	var generic any
	if err := json.Unmarshal([]byte(raw), &generic); err == nil {
		return generic
	}
	return raw
}

func decodeInto[T any](raw string) (T, error) {
	var out T
	err := json.Unmarshal([]byte(raw), &out)
	return out, err
}

func (cv *ColumnValue) requireType(want ColumnType) error {
	if cv.typ != want {
		return &TypeMismatchError{Column: cv.title, Have: cv.typ, Want: want}
	}
	return nil
}

// project returns the current value as T, re-decoding through JSON when the
// cell was hydrated into a generic document. An empty cell projects to the
// zero payload.
func project[T any](cv *ColumnValue) (T, error) {
	var out T
	if cv.value == nil {
		return out, nil
	}
	if v, ok := cv.value.(T); ok {
		return v, nil
	}
	raw, err := json.Marshal(cv.value)
	if err != nil {
		return out, fmt.Errorf("re-encoding column value: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("column %q value does not match its type's payload shape: %w", cv.title, err)
	}
	return out, nil
}

// emailRegex matches the same address shapes the original validator accepted.
var emailRegex = regexp.MustCompile("^[-!#$%&'*+/0-9=?A-Z^_a-z`{|}~](\\.?[-!#$%&'*+/0-9=?A-Z^_a-z`{|}~])*@[a-zA-Z0-9](-*\\.?[a-zA-Z0-9])*\\.[a-zA-Z](-?[a-zA-Z0-9])+$")

var phoneRegex = regexp.MustCompile(`^\d{10,20}$`)

// SetCheckbox sets a checkbox column.
func (cv *ColumnValue) SetCheckbox(checked bool) error {
	if err := cv.requireType(ColumnCheckbox); err != nil {
		return err
	}
	cv.Set(CheckboxValue{Checked: checked})
	return nil
}

// Checkbox reads a checkbox column.
func (cv *ColumnValue) Checkbox() (CheckboxValue, error) {
	if err := cv.requireType(ColumnCheckbox); err != nil {
		return CheckboxValue{}, err
	}
	return project[CheckboxValue](cv)
}

// SetCountry sets a country column from a two-letter ISO 3166 code.
func (cv *ColumnValue) SetCountry(countryCode string) error {
	if err := cv.requireType(ColumnCountry); err != nil {
		return err
	}
	if len(countryCode) != 2 {
		return &ValidationError{Field: "countryCode", Reason: "must be a 2-letter string"}
	}
	name := CountryName(countryCode)
	if name == "" {
		return &ValidationError{Field: "countryCode", Reason: fmt.Sprintf("code %q is not supported", countryCode)}
	}
	cv.Set(CountryValue{CountryCode: countryCode, CountryName: name})
	return nil
}

// Country reads a country column.
func (cv *ColumnValue) Country() (CountryValue, error) {
	if err := cv.requireType(ColumnCountry); err != nil {
		return CountryValue{}, err
	}
	return project[CountryValue](cv)
}

// SetDate sets a date column. The remote service takes separate date and
// time components, in UTC.
func (cv *ColumnValue) SetDate(date time.Time) error {
	if err := cv.requireType(ColumnDate); err != nil {
		return err
	}
	if date.IsZero() {
		return &ValidationError{Field: "date", Reason: "must not be the zero time"}
	}
	utc := date.UTC()
	cv.Set(DateValue{Date: utc.Format("2006-01-02"), Time: utc.Format("15:04:05")})
	return nil
}

// Date reads a date column.
func (cv *ColumnValue) Date() (DateValue, error) {
	if err := cv.requireType(ColumnDate); err != nil {
		return DateValue{}, err
	}
	return project[DateValue](cv)
}

// SetDropdown sets a dropdown column to labels that already exist on the column.
func (cv *ColumnValue) SetDropdown(labels ...string) error {
	if err := cv.requireType(ColumnDropdown); err != nil {
		return err
	}
	if len(labels) == 0 {
		return &ValidationError{Field: "labels", Reason: "must specify at least one label"}
	}
	for _, label := range labels {
		if label == "" {
			return &ValidationError{Field: "labels", Reason: "labels must be non-empty strings"}
		}
	}
	cv.Set(DropdownValue{Labels: labels})
	return nil
}

// Dropdown reads a dropdown column.
func (cv *ColumnValue) Dropdown() (DropdownValue, error) {
	if err := cv.requireType(ColumnDropdown); err != nil {
		return DropdownValue{}, err
	}
	return project[DropdownValue](cv)
}

// SetEmail sets an email column with an optional display text.
func (cv *ColumnValue) SetEmail(email, text string) error {
	if err := cv.requireType(ColumnEmail); err != nil {
		return err
	}
	if !emailRegex.MatchString(email) {
		return &ValidationError{Field: "email", Reason: fmt.Sprintf("%q is not a valid address", email)}
	}
	cv.Set(EmailValue{Email: email, Text: text})
	return nil
}

// Email reads an email column.
func (cv *ColumnValue) Email() (EmailValue, error) {
	if err := cv.requireType(ColumnEmail); err != nil {
		return EmailValue{}, err
	}
	return project[EmailValue](cv)
}

// SetHour sets an hour column.
func (cv *ColumnValue) SetHour(hour, minute int) error {
	if err := cv.requireType(ColumnHour); err != nil {
		return err
	}
	if hour < 0 || hour > 23 {
		return &ValidationError{Field: "hour", Reason: "must be 0-23"}
	}
	if minute < 0 || minute > 59 {
		return &ValidationError{Field: "minute", Reason: "must be 0-59"}
	}
	cv.Set(HourValue{Hour: hour, Minute: minute})
	return nil
}

// Hour reads an hour column.
func (cv *ColumnValue) Hour() (HourValue, error) {
	if err := cv.requireType(ColumnHour); err != nil {
		return HourValue{}, err
	}
	return project[HourValue](cv)
}

// SetName sets the name column. Names are bare strings, 1-255 characters.
func (cv *ColumnValue) SetName(name string) error {
	if err := cv.requireType(ColumnName); err != nil {
		return err
	}
	if len(name) == 0 || len(name) > 255 {
		return &ValidationError{Field: "name", Reason: "must be 1-255 characters"}
	}
	cv.Set(name)
	return nil
}

// Name reads the name column.
func (cv *ColumnValue) Name() (string, error) {
	if err := cv.requireType(ColumnName); err != nil {
		return "", err
	}
	return project[string](cv)
}

// SetLink sets a link column with an optional display text.
func (cv *ColumnValue) SetLink(url, text string) error {
	if err := cv.requireType(ColumnLink); err != nil {
		return err
	}
	if url == "" {
		return &ValidationError{Field: "url", Reason: "must be a non-empty string"}
	}
	cv.Set(LinkValue{URL: url, Text: text})
	return nil
}

// Link reads a link column.
func (cv *ColumnValue) Link() (LinkValue, error) {
	if err := cv.requireType(ColumnLink); err != nil {
		return LinkValue{}, err
	}
	return project[LinkValue](cv)
}

// SetLongText sets a long-text column, 1-2000 characters.
func (cv *ColumnValue) SetLongText(text string) error {
	if err := cv.requireType(ColumnLongText); err != nil {
		return err
	}
	if len(text) == 0 || len(text) > 2000 {
		return &ValidationError{Field: "text", Reason: "length must be 1-2000"}
	}
	cv.Set(LongTextValue{Text: text})
	return nil
}

// LongText reads a long-text column.
func (cv *ColumnValue) LongText() (LongTextValue, error) {
	if err := cv.requireType(ColumnLongText); err != nil {
		return LongTextValue{}, err
	}
	return project[LongTextValue](cv)
}

// SetNumber sets a number column. The remote payload is the number
// serialized as a string.
func (cv *ColumnValue) SetNumber(number float64) error {
	if err := cv.requireType(ColumnNumber); err != nil {
		return err
	}
	if math.IsNaN(number) || math.IsInf(number, 0) {
		return &ValidationError{Field: "number", Reason: "must be finite"}
	}
	cv.Set(strconv.FormatFloat(number, 'f', -1, 64))
	return nil
}

// Number reads a number column.
func (cv *ColumnValue) Number() (float64, error) {
	if err := cv.requireType(ColumnNumber); err != nil {
		return 0, err
	}
	s, err := project[string](cv)
	if err != nil {
		return 0, err
	}
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("column %q holds a non-numeric payload: %w", cv.title, err)
	}
	return n, nil
}

// SetPeople sets a people column from one or more user ids.
func (cv *ColumnValue) SetPeople(userIDs ...int) error {
	if err := cv.requireType(ColumnPeople); err != nil {
		return err
	}
	if len(userIDs) == 0 {
		return &ValidationError{Field: "userIDs", Reason: "must include at least one user id"}
	}
	entries := make([]PersonOrTeam, len(userIDs))
	for i, id := range userIDs {
		entries[i] = PersonOrTeam{ID: id, Kind: "person"}
	}
	cv.Set(PeopleValue{PersonsAndTeams: entries})
	return nil
}

// People reads a people column.
func (cv *ColumnValue) People() (PeopleValue, error) {
	if err := cv.requireType(ColumnPeople); err != nil {
		return PeopleValue{}, err
	}
	return project[PeopleValue](cv)
}

// SetPhone sets a phone column. An empty countryCode defaults to "US".
func (cv *ColumnValue) SetPhone(phone, countryCode string) error {
	if err := cv.requireType(ColumnPhone); err != nil {
		return err
	}
	if countryCode == "" {
		countryCode = "US"
	}
	if CountryName(countryCode) == "" {
		return &ValidationError{Field: "countryCode", Reason: fmt.Sprintf("code %q is not supported", countryCode)}
	}
	if !phoneRegex.MatchString(phone) {
		return &ValidationError{Field: "phone", Reason: "must be a digits-only string of 10-20 digits"}
	}
	cv.Set(PhoneValue{Phone: phone, CountryShortName: countryCode})
	return nil
}

// Phone reads a phone column.
func (cv *ColumnValue) Phone() (PhoneValue, error) {
	if err := cv.requireType(ColumnPhone); err != nil {
		return PhoneValue{}, err
	}
	return project[PhoneValue](cv)
}

// SetRating sets a rating column. Ratings start at 1.
func (cv *ColumnValue) SetRating(rating int) error {
	if err := cv.requireType(ColumnRating); err != nil {
		return err
	}
	if rating < 1 {
		return &ValidationError{Field: "rating", Reason: "must be >= 1"}
	}
	cv.Set(RatingValue{Rating: rating})
	return nil
}

// Rating reads a rating column.
func (cv *ColumnValue) Rating() (RatingValue, error) {
	if err := cv.requireType(ColumnRating); err != nil {
		return RatingValue{}, err
	}
	return project[RatingValue](cv)
}

// SetStatus sets a status column to a label that already exists on the column.
func (cv *ColumnValue) SetStatus(status string) error {
	if err := cv.requireType(ColumnStatus); err != nil {
		return err
	}
	if status == "" {
		return &ValidationError{Field: "status", Reason: "must be a non-empty string"}
	}
	cv.Set(StatusValue{Label: status})
	return nil
}

// Status reads a status column.
func (cv *ColumnValue) Status() (StatusValue, error) {
	if err := cv.requireType(ColumnStatus); err != nil {
		return StatusValue{}, err
	}
	return project[StatusValue](cv)
}

// SetTags sets a tag column from tag names, resolved case-insensitively
// against the owning account's tag registry. Names that don't resolve are
// dropped; the call fails only when nothing resolves.
func (cv *ColumnValue) SetTags(tagNames ...string) error {
	if err := cv.requireType(ColumnTags); err != nil {
		return err
	}
	if len(tagNames) == 0 {
		return &ValidationError{Field: "tags", Reason: "must specify at least one tag name"}
	}
	account := cv.item.group.board.account
	var ids []int
	for _, name := range tagNames {
		if name == "" {
			return &ValidationError{Field: "tags", Reason: "tag names must be non-empty strings"}
		}
		if tag := account.TagByName(name); tag != nil {
			ids = append(ids, tag.ID())
		}
	}
	if len(ids) == 0 {
		return &ValidationError{Field: "tags", Reason: "no tag names resolved against the account's tags"}
	}
	cv.Set(TagsValue{TagIDs: ids})
	return nil
}

// Tags reads a tag column.
func (cv *ColumnValue) Tags() (TagsValue, error) {
	if err := cv.requireType(ColumnTags); err != nil {
		return TagsValue{}, err
	}
	return project[TagsValue](cv)
}

// SetText sets a text column. Text columns carry a bare string payload.
func (cv *ColumnValue) SetText(text string) error {
	if err := cv.requireType(ColumnText); err != nil {
		return err
	}
	if text == "" {
		return &ValidationError{Field: "text", Reason: "must be a non-empty string"}
	}
	cv.Set(text)
	return nil
}

// Text reads a text column.
func (cv *ColumnValue) Text() (string, error) {
	if err := cv.requireType(ColumnText); err != nil {
		return "", err
	}
	return project[string](cv)
}

// SetTimeline validates its inputs and then fails: the timeline payload is a
// known gap, not yet supported.
func (cv *ColumnValue) SetTimeline(from, to time.Time) error {
	if err := cv.requireType(ColumnTimeline); err != nil {
		return err
	}
	if from.IsZero() || to.IsZero() {
		return &ValidationError{Field: "timeline", Reason: "from and to must not be the zero time"}
	}
	if from.After(to) {
		return &ValidationError{Field: "timeline", Reason: "from must not be after to"}
	}
	return &UnimplementedError{Feature: "timeline setter"}
}

// SetWeek validates its inputs and then fails: the week payload is a known
// gap, not yet supported.
func (cv *ColumnValue) SetWeek(startDate time.Time, calendarStartDay int) error {
	if err := cv.requireType(ColumnWeek); err != nil {
		return err
	}
	if startDate.IsZero() {
		return &ValidationError{Field: "startDate", Reason: "must not be the zero time"}
	}
	if calendarStartDay < 0 || calendarStartDay > 6 {
		return &ValidationError{Field: "calendarStartDay", Reason: "must be 0-6"}
	}
	return &UnimplementedError{Feature: "week setter"}
}

// ColumnValueSnapshot is the plain-record projection of a ColumnValue.
type ColumnValueSnapshot struct {
	ID      string     `json:"id" yaml:"id"`
	Type    ColumnType `json:"type" yaml:"type"`
	Title   string     `json:"title" yaml:"title"`
	Value   any        `json:"value" yaml:"value"`
	Changed bool       `json:"changed" yaml:"changed"`
}

// Snapshot returns a one-way plain-record projection of the cell.
func (cv *ColumnValue) Snapshot() ColumnValueSnapshot {
	return ColumnValueSnapshot{
		ID:      cv.id,
		Type:    cv.typ,
		Title:   cv.title,
		Value:   cv.value,
		Changed: cv.changed,
	}
}

// titlesEqual compares names the way lookups do: case-insensitive,
// surrounding whitespace ignored.
func titlesEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
