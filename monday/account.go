// ABOUTME: Account is the top-level synchronization root owning users, tags, and boards.
// ABOUTME: Pull merges users/boards in place and replaces tags wholesale.
package monday

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/2389-research/mondaygo/graphql"
)

// EnvToken is the environment variable consulted when no explicit API token
// is supplied.
const EnvToken = "MONDAY_API_TOKEN"

// Account is the top-level authorization scope: the users, tags, and boards
// reachable with one API token. It owns the query-execution capability its
// descendants use for their own round-trips.
type Account struct {
	executor graphql.Executor
	logger   *log.Logger
	users    []*User
	tags     []*Tag
	boards   []*Board
}

// AccountOption is a functional option for configuring an Account.
type AccountOption func(*accountConfig)

type accountConfig struct {
	token    string
	executor graphql.Executor
	logger   *log.Logger
}

// WithToken sets the API token explicitly, taking precedence over the
// MONDAY_API_TOKEN environment fallback.
func WithToken(token string) AccountOption {
	return func(c *accountConfig) {
		c.token = token
	}
}

// WithExecutor injects the query-execution capability directly, bypassing
// token resolution entirely. Tests use this to substitute a fake.
func WithExecutor(executor graphql.Executor) AccountOption {
	return func(c *accountConfig) {
		c.executor = executor
	}
}

// WithLogger replaces the account's logger. If never set, a default logger
// writing to stderr with a [monday] prefix is used.
func WithLogger(logger *log.Logger) AccountOption {
	return func(c *accountConfig) {
		c.logger = logger
	}
}

// NewAccount creates an Account. Construction fails with a ConfigError when
// no executor is injected and no token is available either explicitly or via
// MONDAY_API_TOKEN; no network activity happens until the first pull.
func NewAccount(opts ...AccountOption) (*Account, error) {
	cfg := accountConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.executor == nil {
		token := cfg.token
		if token == "" {
			token = os.Getenv(EnvToken)
		}
		if token == "" {
			return nil, &ConfigError{Missing: "API token"}
		}
		cfg.executor = graphql.NewClient(token)
	}
	if cfg.logger == nil {
		cfg.logger = log.New(os.Stderr, "[monday] ", log.LstdFlags)
	}

	return &Account{executor: cfg.executor, logger: cfg.logger}, nil
}

// LoadAccount creates an Account and immediately pulls its remote state.
func LoadAccount(ctx context.Context, opts ...AccountOption) (*Account, error) {
	account, err := NewAccount(opts...)
	if err != nil {
		return nil, err
	}
	if err := account.Pull(ctx); err != nil {
		return nil, err
	}
	return account, nil
}

// LoadBoard creates an Account, binds a single Board to it by id, and pulls
// the board's schema and groups. Construction fails when id is empty or no
// token is resolvable.
func LoadBoard(ctx context.Context, id string, opts ...AccountOption) (*Board, error) {
	account, err := NewAccount(opts...)
	if err != nil {
		return nil, err
	}
	return account.LoadBoard(ctx, id)
}

// LoadBoard binds a single board to the account by id and pulls its schema
// and groups, without pulling the rest of the account.
func (a *Account) LoadBoard(ctx context.Context, id string) (*Board, error) {
	if id == "" {
		return nil, &ConfigError{Missing: "board id"}
	}
	board := newBoard(a, boardSummary{ID: Present(id)})
	a.boards = append(a.boards, board)
	if err := board.Pull(ctx); err != nil {
		return nil, err
	}
	return board, nil
}

// Executor returns the account's query-execution capability, authorized with
// the account's token.
func (a *Account) Executor() graphql.Executor { return a.executor }

func (a *Account) exec(ctx context.Context, document string) (json.RawMessage, error) {
	return a.executor.Execute(ctx, document)
}

// Users returns the account's users. The slice is a copy; the users are the
// live, merge-in-place objects.
func (a *Account) Users() []*User {
	out := make([]*User, len(a.users))
	copy(out, a.users)
	return out
}

// Tags returns the account's tags. The slice is a copy.
func (a *Account) Tags() []*Tag {
	out := make([]*Tag, len(a.tags))
	copy(out, a.tags)
	return out
}

// Boards returns the account's boards. The slice is a copy; the boards are
// the live, merge-in-place objects.
func (a *Account) Boards() []*Board {
	out := make([]*Board, len(a.boards))
	copy(out, a.boards)
	return out
}

// BoardByID returns the board with the given id, or nil if absent.
func (a *Account) BoardByID(id string) *Board {
	for _, b := range a.boards {
		if b.id == id {
			return b
		}
	}
	return nil
}

// UserByID returns the user with the given id, or nil if absent.
func (a *Account) UserByID(id int) *User {
	for _, u := range a.users {
		if u.id == id {
			return u
		}
	}
	return nil
}

// UserByEmail returns the user with the given email, or nil if absent.
func (a *Account) UserByEmail(email string) *User {
	for _, u := range a.users {
		if u.email == email {
			return u
		}
	}
	return nil
}

// TagByName returns the tag whose name matches, case-insensitively, or nil
// if absent.
func (a *Account) TagByName(name string) *Tag {
	for _, t := range a.tags {
		if titlesEqual(t.name, name) {
			return t
		}
	}
	return nil
}

// accountInfo is the remote payload for the account-level pull.
type accountInfo struct {
	Tags []struct {
		ID    int    `json:"id"`
		Name  string `json:"name"`
		Color string `json:"color"`
	} `json:"tags"`
	Users  []userInfo     `json:"users"`
	Boards []boardSummary `json:"boards"`
}

// Pull fetches the account's tags, users, and board summaries in one
// round-trip and reconciles local state: users and boards are merged in
// place (so external references survive) and entries absent from the remote
// set are removed; tags are replaced wholesale. A newly discovered board is
// pulled immediately to populate its schema and groups.
func (a *Account) Pull(ctx context.Context) error {
	document := `query {
      tags {
        id
        name
        color
      }
      boards {
        id
        name
      }
      users (kind: non_guests) {
        id
        name
        email
      }
    }`

	data, err := a.exec(ctx, document)
	if err != nil {
		return err
	}

	var info accountInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return fmt.Errorf("decoding account response: %w", err)
	}
	if len(info.Users) == 0 || len(info.Boards) == 0 {
		return &DataIntegrityError{
			Op:     "account pull",
			Detail: "no account data found; make sure at least one board exists",
		}
	}

	// Users: update existing objects rather than replacing them.
	remoteUsers := make(map[int]bool, len(info.Users))
	for _, ui := range info.Users {
		remoteUsers[ui.ID] = true
		if existing := a.UserByID(ui.ID); existing != nil {
			existing.updateWithRemoteData(ui)
			continue
		}
		a.users = append(a.users, newUser(ui))
	}
	a.users = filterInPlace(a.users, func(u *User) bool { return remoteUsers[u.id] })

	// Tags are snapshots; replace wholesale.
	a.tags = a.tags[:0]
	for _, ti := range info.Tags {
		a.tags = append(a.tags, newTag(ti.ID, ti.Name, ti.Color))
	}

	// Boards: update existing objects; pull newly discovered ones so their
	// schema and groups are populated.
	remoteBoards := make(map[string]bool, len(info.Boards))
	for _, summary := range info.Boards {
		id, ok := summary.ID.Get()
		if !ok {
			continue
		}
		remoteBoards[id] = true
		if existing := a.BoardByID(id); existing != nil {
			existing.updateWithRemoteData(summary)
			continue
		}
		board := newBoard(a, summary)
		a.boards = append(a.boards, board)
		if err := board.Pull(ctx); err != nil {
			return err
		}
	}
	a.boards = filterInPlace(a.boards, func(b *Board) bool { return remoteBoards[b.id] })

	return nil
}

// filterInPlace keeps the elements of s for which keep returns true,
// preserving order and reusing the backing array.
func filterInPlace[T any](s []T, keep func(T) bool) []T {
	out := s[:0]
	for _, v := range s {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// AccountSnapshot is the plain-record projection of an Account.
type AccountSnapshot struct {
	Users  []UserSnapshot  `json:"users" yaml:"users"`
	Tags   []TagSnapshot   `json:"tags" yaml:"tags"`
	Boards []BoardSnapshot `json:"boards" yaml:"boards"`
}

// Snapshot returns a one-way plain-record projection of the account.
func (a *Account) Snapshot() AccountSnapshot {
	snap := AccountSnapshot{
		Users:  make([]UserSnapshot, len(a.users)),
		Tags:   make([]TagSnapshot, len(a.tags)),
		Boards: make([]BoardSnapshot, len(a.boards)),
	}
	for i, u := range a.users {
		snap.Users[i] = u.Snapshot()
	}
	for i, t := range a.tags {
		snap.Tags[i] = t.Snapshot()
	}
	for i, b := range a.boards {
		snap.Boards[i] = b.Snapshot()
	}
	return snap
}
