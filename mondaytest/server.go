// ABOUTME: In-memory fake of the monday.com GraphQL API for integration tests.
// ABOUTME: Dispatches on the operation in the posted document and mutates seeded state.
package mondaytest

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// User is a seeded account member.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Tag is a seeded account-wide tag.
type Tag struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Column is a seeded schema column on a board.
type Column struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	Archived bool   `json:"archived"`
}

// Group is a seeded group. Items created through the API land here.
type Group struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Archived bool    `json:"archived"`
	Deleted  bool    `json:"deleted"`
	Items    []*Item `json:"-"`
}

// Board is a seeded board with its schema and groups.
type Board struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Groups  []*Group `json:"groups"`
	Columns []Column `json:"columns"`
}

// Item is a row held by a group. Values maps column id to the cell's
// serialized JSON payload; columns without an entry report null.
type Item struct {
	ID     string
	Name   string
	Values map[string]string
}

// Server is an in-memory stand-in for the monday.com API, suitable for
// hosting with httptest. It implements http.Handler; every POST is treated
// as a GraphQL request regardless of path.
type Server struct {
	mu     sync.Mutex
	router chi.Router
	logger *log.Logger

	nextItemID int64

	Users  []User
	Tags   []Tag
	Boards []*Board

	// Requests counts the GraphQL documents served, so tests can assert
	// that an operation performed no round-trip.
	Requests int
}

// NewServer creates an empty Server. Seed it with AddUser/AddTag/AddBoard
// before serving.
func NewServer() *Server {
	s := &Server{
		logger:     log.New(os.Stderr, "[mondaytest] ", log.LstdFlags),
		nextItemID: 100000001,
	}
	r := chi.NewRouter()
	r.Post("/*", s.handleGraphQL)
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// AddUser seeds an account member.
func (s *Server) AddUser(id int, name, email string) {
	s.Users = append(s.Users, User{ID: id, Name: name, Email: email})
}

// AddTag seeds an account-wide tag.
func (s *Server) AddTag(id int, name, color string) {
	s.Tags = append(s.Tags, Tag{ID: id, Name: name, Color: color})
}

// AddBoard seeds a board and returns it for further setup.
func (s *Server) AddBoard(id, name string) *Board {
	b := &Board{ID: id, Name: name}
	s.Boards = append(s.Boards, b)
	return b
}

// AddGroup seeds a group on the board and returns it.
func (b *Board) AddGroup(id, title string) *Group {
	g := &Group{ID: id, Title: title}
	b.Groups = append(b.Groups, g)
	return g
}

// AddColumn seeds a schema column on the board.
func (b *Board) AddColumn(id, title, typ string) {
	b.Columns = append(b.Columns, Column{ID: id, Title: title, Type: typ})
}

// AddArchivedColumn seeds a column the API reports as archived.
func (b *Board) AddArchivedColumn(id, title, typ string) {
	b.Columns = append(b.Columns, Column{ID: id, Title: title, Type: typ, Archived: true})
}

var (
	createItemRe = regexp.MustCompile(`create_item \(board_id: (\d+), group_id: ("(?:[^"\\]|\\.)*"), item_name: ("(?:[^"\\]|\\.)*")\)`)
	changeRe     = regexp.MustCompile(`change_multiple_column_values \(board_id: (\d+), item_id: (\d+), column_values: ("(?:[^"\\]|\\.)*")\)`)
	deleteRe     = regexp.MustCompile(`delete_item \(item_id: (\d+)\)`)
	itemsByIDRe  = regexp.MustCompile(`items \(ids: \[(\d+)\]\)`)
	searchRe     = regexp.MustCompile(`items_by_column_values \(board_id: (\d+), column_id: ("(?:[^"\\]|\\.)*"), column_value: ("(?:[^"\\]|\\.)*")\)`)
	pagedRe      = regexp.MustCompile(`(?s)boards \(ids: (\d+)\) \{\s*groups \(ids: ("(?:[^"\\]|\\.)*")\) \{\s*items \(page: (\d+)\)`)
	boardRe      = regexp.MustCompile(`boards \(ids: (\d+)\)`)
)

func (s *Server) handleGraphQL(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrors(w, "request body is not valid JSON")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Requests++

	reqID := uuid.NewString()[:8]
	doc := req.Query

	switch {
	case createItemRe.MatchString(doc):
		s.logger.Printf("req %s: create_item", reqID)
		s.handleCreateItem(w, doc)
	case changeRe.MatchString(doc):
		s.logger.Printf("req %s: change_multiple_column_values", reqID)
		s.handleChangeColumnValues(w, doc)
	case deleteRe.MatchString(doc):
		s.logger.Printf("req %s: delete_item", reqID)
		s.handleDeleteItem(w, doc)
	case searchRe.MatchString(doc):
		s.logger.Printf("req %s: items_by_column_values", reqID)
		s.handleSearch(w, doc)
	case itemsByIDRe.MatchString(doc):
		s.logger.Printf("req %s: items by id", reqID)
		s.handleItemsByID(w, doc)
	case pagedRe.MatchString(doc):
		s.logger.Printf("req %s: paged group items", reqID)
		s.handlePagedItems(w, doc)
	case strings.Contains(doc, "tags {") && strings.Contains(doc, "users"):
		s.logger.Printf("req %s: account query", reqID)
		s.handleAccount(w)
	case boardRe.MatchString(doc):
		s.logger.Printf("req %s: board query", reqID)
		s.handleBoard(w, doc)
	default:
		s.logger.Printf("req %s: unrecognized document", reqID)
		s.writeErrors(w, "unrecognized query")
	}
}

func (s *Server) writeData(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"data":       data,
		"account_id": 1,
	})
}

func (s *Server) writeErrors(w http.ResponseWriter, msgs ...string) {
	errs := make([]map[string]string, len(msgs))
	for i, m := range msgs {
		errs[i] = map[string]string{"message": m}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"data":   nil,
		"errors": errs,
	})
}

func unquote(s string) string {
	out, err := strconv.Unquote(s)
	if err != nil {
		return s
	}
	return out
}

func (s *Server) boardByID(id string) *Board {
	for _, b := range s.Boards {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func (s *Server) findItem(id string) (*Board, *Group, *Item) {
	for _, b := range s.Boards {
		for _, g := range b.Groups {
			for _, it := range g.Items {
				if it.ID == id {
					return b, g, it
				}
			}
		}
	}
	return nil, nil, nil
}

// columnValuesPayload renders one entry per board column for the item, with
// null values for unset cells.
func columnValuesPayload(b *Board, it *Item) []map[string]any {
	out := make([]map[string]any, 0, len(b.Columns))
	for _, c := range b.Columns {
		var value any
		if raw, ok := it.Values[c.ID]; ok {
			value = raw
		}
		out = append(out, map[string]any{
			"id":    c.ID,
			"title": c.Title,
			"type":  c.Type,
			"value": value,
		})
	}
	return out
}

func (s *Server) handleAccount(w http.ResponseWriter) {
	boards := make([]map[string]any, len(s.Boards))
	for i, b := range s.Boards {
		boards[i] = map[string]any{"id": b.ID, "name": b.Name}
	}
	s.writeData(w, map[string]any{
		"tags":   s.Tags,
		"users":  s.Users,
		"boards": boards,
	})
}

func (s *Server) handleBoard(w http.ResponseWriter, doc string) {
	m := boardRe.FindStringSubmatch(doc)
	b := s.boardByID(m[1])
	if b == nil {
		s.writeData(w, map[string]any{"boards": []any{}})
		return
	}
	s.writeData(w, map[string]any{"boards": []any{b}})
}

func (s *Server) handleCreateItem(w http.ResponseWriter, doc string) {
	m := createItemRe.FindStringSubmatch(doc)
	boardID, groupID, itemName := m[1], unquote(m[2]), unquote(m[3])

	b := s.boardByID(boardID)
	if b == nil {
		s.writeErrors(w, fmt.Sprintf("board %s not found", boardID))
		return
	}
	var g *Group
	for _, cand := range b.Groups {
		if cand.ID == groupID {
			g = cand
			break
		}
	}
	if g == nil {
		s.writeErrors(w, fmt.Sprintf("group %s not found", groupID))
		return
	}

	it := &Item{
		ID:     strconv.FormatInt(s.nextItemID, 10),
		Name:   itemName,
		Values: make(map[string]string),
	}
	s.nextItemID++
	g.Items = append(g.Items, it)

	s.writeData(w, map[string]any{
		"create_item": map[string]any{
			"id":            it.ID,
			"column_values": columnValuesPayload(b, it),
		},
	})
}

func (s *Server) handleChangeColumnValues(w http.ResponseWriter, doc string) {
	m := changeRe.FindStringSubmatch(doc)
	itemID := m[2]

	b, _, it := s.findItem(itemID)
	if it == nil {
		s.writeErrors(w, fmt.Sprintf("item %s not found", itemID))
		return
	}

	var values map[string]json.RawMessage
	if err := json.Unmarshal([]byte(unquote(m[3])), &values); err != nil {
		s.writeErrors(w, "column_values is not valid JSON")
		return
	}
	for columnID, raw := range values {
		it.Values[columnID] = string(raw)
	}

	s.writeData(w, map[string]any{
		"change_multiple_column_values": map[string]any{
			"id":            it.ID,
			"column_values": columnValuesPayload(b, it),
		},
	})
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, doc string) {
	m := deleteRe.FindStringSubmatch(doc)
	itemID := m[1]

	_, g, it := s.findItem(itemID)
	if it == nil {
		s.writeErrors(w, fmt.Sprintf("item %s not found", itemID))
		return
	}
	for i, cand := range g.Items {
		if cand == it {
			g.Items = append(g.Items[:i], g.Items[i+1:]...)
			break
		}
	}

	s.writeData(w, map[string]any{
		"delete_item": map[string]any{"id": it.ID},
	})
}

func (s *Server) handleItemsByID(w http.ResponseWriter, doc string) {
	m := itemsByIDRe.FindStringSubmatch(doc)
	b, _, it := s.findItem(m[1])
	if it == nil {
		s.writeData(w, map[string]any{"items": []any{}})
		return
	}
	s.writeData(w, map[string]any{
		"items": []any{
			map[string]any{"column_values": columnValuesPayload(b, it)},
		},
	})
}

// handleSearch matches an item whose stored cell equals the searched value,
// comparing either the serialized payload or, for string payloads, the
// decoded string.
func (s *Server) handleSearch(w http.ResponseWriter, doc string) {
	m := searchRe.FindStringSubmatch(doc)
	boardID, columnID, columnValue := m[1], unquote(m[2]), unquote(m[3])

	b := s.boardByID(boardID)
	if b == nil {
		s.writeData(w, map[string]any{"items_by_column_values": []any{}})
		return
	}

	matches := []any{}
	for _, g := range b.Groups {
		for _, it := range g.Items {
			raw, ok := it.Values[columnID]
			if !ok {
				continue
			}
			if raw == columnValue || decodedString(raw) == columnValue {
				matches = append(matches, map[string]any{"id": it.ID, "name": it.Name})
			}
		}
	}
	s.writeData(w, map[string]any{"items_by_column_values": matches})
}

func decodedString(raw string) string {
	var v string
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return ""
	}
	return v
}

const pageSize = 25

func (s *Server) handlePagedItems(w http.ResponseWriter, doc string) {
	m := pagedRe.FindStringSubmatch(doc)
	boardID, groupID := m[1], unquote(m[2])
	page, _ := strconv.Atoi(m[3])

	b := s.boardByID(boardID)
	if b == nil {
		s.writeData(w, map[string]any{"boards": []any{}})
		return
	}
	var g *Group
	for _, cand := range b.Groups {
		if cand.ID == groupID {
			g = cand
			break
		}
	}
	if g == nil {
		s.writeData(w, map[string]any{
			"boards": []any{map[string]any{"groups": []any{}}},
		})
		return
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(g.Items) {
		start = len(g.Items)
	}
	if end > len(g.Items) {
		end = len(g.Items)
	}
	items := make([]any, 0, end-start)
	for _, it := range g.Items[start:end] {
		items = append(items, map[string]any{"id": it.ID, "name": it.Name})
	}

	s.writeData(w, map[string]any{
		"boards": []any{
			map[string]any{
				"groups": []any{
					map[string]any{"items": items},
				},
			},
		},
	})
}
