package lookup

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"gorm.io/gorm"
)

// Maps holds one id→name map per lookup table. Ids are always compared
// as strings; the legacy tables mix numeric and uuid key types.
type Maps map[string]map[string]string

// Has reports whether the table loaded successfully.
func (m Maps) Has(table string) bool {
	_, ok := m[table]
	return ok
}

// Name resolves an id through a table map. A missing table or unknown
// id degrades to the raw id so callers never lose a token silently.
func (m Maps) Name(table, id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}
	if names, ok := m[table]; ok {
		if name, ok := names[id]; ok {
			return name
		}
	}
	return id
}

// NameRef resolves an optional foreign key, returning "" for nil.
func (m Maps) NameRef(table string, id *string) string {
	if id == nil {
		return ""
	}
	return m.Name(table, *id)
}

// Resolve fetches the given lookup tables and builds an id→name map
// for each. Fetches run in parallel; a failed table is logged and left
// absent so the rest of the run can degrade to raw-id display.
func Resolve(db *gorm.DB, tables ...string) Maps {
	maps := make(Maps, len(tables))

	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, table := range tables {
		wg.Add(1)
		go func(table string) {
			defer wg.Done()

			var rows []map[string]interface{}
			if err := db.Table(table).Find(&rows).Error; err != nil {
				log.Printf("⚠️  Lookup table %q failed to load, ids will display raw: %v", table, err)
				return
			}

			names := make(map[string]string, len(rows))
			for _, row := range rows {
				id := asString(row["id"])
				if id == "" {
					continue
				}
				name := asString(row["name"])
				if name == "" {
					// delivery_addresses legacy rows only carry an address
					name = asString(row["address"])
				}
				if name == "" {
					continue
				}
				names[id] = name
			}

			mu.Lock()
			maps[table] = names
			mu.Unlock()
		}(table)
	}

	wg.Wait()
	return maps
}

// asString coerces a scanned cell to a trimmed string key
func asString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case []byte:
		return strings.TrimSpace(string(s))
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
