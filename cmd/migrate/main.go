package main

import (
	"database/sql"
	"time"

	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/db"
	"github.com/sirupsen/logrus"
)

const dbWaitTimeout = time.Second * 10

func main() {
	waitForDB()
	db.Migrate()
	logrus.Info("migrations complete")
}

// waitForDB polls until the database accepts connections. db.Instance
// panics while the database is unreachable, so each attempt runs behind
// a recover.
func waitForDB() {
	deadline := time.Now().Add(dbWaitTimeout)
	for {
		if time.Now().After(deadline) {
			logrus.Fatal("could not connect to database")
		}

		dbh := func() *sql.DB {
			defer func() { _ = recover() }()
			return db.Instance()
		}()

		if dbh != nil {
			return
		}

		time.Sleep(time.Millisecond * 500)
	}
}
