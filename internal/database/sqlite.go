package database

import (
	"database/sql"
	"strings"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// sqliteDriverName 注册了 Unicode lower() 的SQLite驱动名
const sqliteDriverName = "sqlite3_arsongs"

func init() {
	sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			// SQLite 自带的 lower() 只转换ASCII字母
			return conn.RegisterFunc("lower", unicodeLower, true)
		},
	})
}

// unicodeLower 文本转为小写，其他类型原样返回
func unicodeLower(v any) any {
	if s, ok := v.(string); ok {
		return strings.ToLower(s)
	}
	return v
}

// openSQLite 使用自定义驱动打开SQLite
func openSQLite(dsn string) gorm.Dialector {
	return sqlite.New(sqlite.Config{
		DriverName: sqliteDriverName,
		DSN:        dsn,
	})
}
