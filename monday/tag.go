// ABOUTME: Tag is an account-wide label usable by tag-typed columns.
// ABOUTME: Tags are immutable snapshots, wholesale replaced on every Account.Pull.
package monday

// Tag is an account-wide label. The id is what tag-typed column values carry.
type Tag struct {
	id    int
	name  string
	color string
}

func newTag(id int, name, color string) *Tag {
	return &Tag{id: id, name: name, color: color}
}

func (t *Tag) ID() int       { return t.id }
func (t *Tag) Name() string  { return t.name }
func (t *Tag) Color() string { return t.color }

// TagSnapshot is the plain-record projection of a Tag.
type TagSnapshot struct {
	ID    int    `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

// Snapshot returns a one-way plain-record projection of the tag.
func (t *Tag) Snapshot() TagSnapshot {
	return TagSnapshot{ID: t.id, Name: t.name, Color: t.color}
}
