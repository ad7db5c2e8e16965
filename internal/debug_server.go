package internal

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
)

const (
	DebugInspectPath     = "/debug/inspect"
	defaultInspectPrefix = "msg:"
	defaultInspectLimit  = 100
)

type InspectRow struct {
	Key       string `json:"key"`
	Namespace string `json:"namespace"`
	EntityID  string `json:"entity_id"`
	Detail    string `json:"detail"`
	ExpiresAt uint64 `json:"expires_at,omitempty"`
}

type RowMapper func(key string, val []byte) InspectRow
type StatsProvider func() any

type PageData struct {
	Prefix string       `json:"prefix"`
	Items  []InspectRow `json:"items"`
	Stats  any          `json:"stats,omitempty"`
}

// InspectHandler lists the embedded store keys under ?prefix= (msg: by
// default), at most ?limit= of them, together with the live stats.
func InspectHandler(db *badger.DB, mapper RowMapper, statsProvider StatsProvider) http.Handler {
	if mapper == nil {
		mapper = DefaultMapper
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		prefix := r.URL.Query().Get("prefix")
		if prefix == "" {
			prefix = defaultInspectPrefix
		}
		limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
		if err != nil || limit <= 0 {
			limit = defaultInspectLimit
		}

		data := PageData{Prefix: prefix, Items: []InspectRow{}}
		if statsProvider != nil {
			data.Stats = statsProvider()
		}

		err = db.View(func(txn *badger.Txn) error {
			it := txn.NewIterator(badger.DefaultIteratorOptions)
			defer it.Close()
			for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)) && len(data.Items) < limit; it.Next() {
				item := it.Item()
				err := item.Value(func(val []byte) error {
					row := mapper(string(item.Key()), val)
					row.ExpiresAt = item.ExpiresAt()
					data.Items = append(data.Items, row)
					return nil
				})
				if err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(data)
	})
}

// DefaultMapper splits keys shaped like namespace:id[:id].
func DefaultMapper(key string, val []byte) InspectRow {
	parts := strings.Split(key, ":")
	row := InspectRow{
		Key:       key,
		Namespace: parts[0],
		EntityID:  "-",
		Detail:    "Size: " + strconv.Itoa(len(val)) + " bytes",
	}
	if len(parts) >= 2 {
		// Ids are zero padded in keys
		ids := lo.Map(parts[1:], func(id string, _ int) string {
			return lo.Ternary(strings.TrimLeft(id, "0") == "", "0", strings.TrimLeft(id, "0"))
		})
		row.EntityID = strings.Join(ids, "/")
	}
	return row
}
