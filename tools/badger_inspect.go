package main

import (
	"chat-live/domain"
	"chat-live/internal"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/database"
	"github.com/olekukonko/tablewriter"
)

func main() {
	dbPath := flag.String("db", database.DefaultPath, "Path to badger DB")
	prefix := flag.String("prefix", "msg:", "Prefix to scan")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Namespace", "Entity ID", "Detail", "Expires"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			err := item.Value(func(v []byte) error {
				row := internal.DefaultMapper(string(item.Key()), v)
				if detail, ok := describe(row.Namespace, v); ok {
					row.Detail = detail
				}
				expires := "-"
				if item.ExpiresAt() > 0 {
					expires = time.Unix(int64(item.ExpiresAt()), 0).Format("15:04:05")
				}
				table.Append([]string{row.Key, row.Namespace, row.EntityID, row.Detail, expires})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	table.Render()
}

// describe renders the known JSON values, anything else keeps the size.
func describe(namespace string, v []byte) (string, bool) {
	switch namespace {
	case "msg":
		var m domain.ChatMessage
		if err := json.Unmarshal(v, &m); err != nil {
			return "", false
		}
		return fmt.Sprintf("[%s] chat %d from %d: %s", m.Kind, m.ChatID, m.SenderID, excerpt(m.Body, 40)), true
	case "user":
		var p domain.SenderProfile
		if err := json.Unmarshal(v, &p); err != nil {
			return "", false
		}
		return p.DisplayName(), true
	case "read":
		var r domain.ReadReceipt
		if err := json.Unmarshal(v, &r); err != nil {
			return "", false
		}
		return "read at " + r.ReadAt.Format(time.RFC3339), true
	case "typing":
		var t domain.TypingIndicator
		if err := json.Unmarshal(v, &t); err != nil {
			return "", false
		}
		return "since " + t.StartedAt.Format("15:04:05"), true
	}
	return "", false
}

func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true).
		WithValueLogFileSize(10 * 1024 * 1024)

	db, err := badger.Open(opts)
	if err != nil {
		// A crashed writer leaves a log that needs truncating first
		if strings.Contains(err.Error(), "Log truncate required") {
			repairOpts := badger.DefaultOptions(path).
				WithLogger(nil).WithBypassLockGuard(true)

			db, err = badger.Open(repairOpts)
			if err != nil {
				return nil, fmt.Errorf("repair failed: %w", err)
			}
			_ = db.Close()
			return badger.Open(opts)
		}
		return nil, err
	}
	return db, nil
}
