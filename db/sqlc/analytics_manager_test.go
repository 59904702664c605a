package sqlc

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sqlc-dev/pqtype"
)

var testInet = pqtype.Inet{
	IPNet: net.IPNet{IP: net.IPv4(127, 0, 0, 1).To4(), Mask: net.CIDRMask(32, 32)},
	Valid: true,
}

func newMockManager(t *testing.T) (*AnalyticsManager, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return NewDbManager(New(db)).Analytics, mock
}

func TestIncrementGamesCreatedCount(t *testing.T) {
	am, mock := newMockManager(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO game_server_analytics (server_ip, games_created)")).
		WithArgs(testInet).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := am.IncrementGamesCreatedCount(context.Background(), testInet); err != nil {
		t.Fatal(err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestRecordGameResult(t *testing.T) {
	tests := []struct {
		name   string
		won    bool
		column string
	}{
		{name: "won", won: true, column: "games_won"},
		{name: "lost", won: false, column: "games_lost"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			am, mock := newMockManager(t)

			mock.ExpectExec(regexp.QuoteMeta("INSERT INTO game_server_analytics (server_ip, " + test.column + ")")).
				WithArgs(testInet).
				WillReturnResult(sqlmock.NewResult(0, 1))

			if err := am.RecordGameResult(context.Background(), testInet, test.won); err != nil {
				t.Fatal(err)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestGetAnalytics(t *testing.T) {
	am, mock := newMockManager(t)

	rows := sqlmock.NewRows([]string{"server_ip", "games_created", "games_won", "games_lost"}).
		AddRow([]byte("127.0.0.1/32"), 12, 5, 4)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT server_ip, games_created, games_won, games_lost FROM game_server_analytics")).
		WithArgs(testInet).
		WillReturnRows(rows)

	analytics, err := am.GetAnalytics(context.Background(), testInet)
	if err != nil {
		t.Fatal(err)
	}
	if analytics.GamesCreated != 12 || analytics.GamesWon != 5 || analytics.GamesLost != 4 {
		t.Fatalf("unexpected analytics: %+v", analytics)
	}
	if !analytics.ServerIp.IPNet.IP.Equal(testInet.IPNet.IP) {
		t.Fatalf("expected server ip: %s\tgot: %s", testInet.IPNet.IP, analytics.ServerIp.IPNet.IP)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestGetGamesCreatedCountNoRows(t *testing.T) {
	am, mock := newMockManager(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT games_created FROM game_server_analytics")).
		WithArgs(testInet).
		WillReturnError(sql.ErrNoRows)

	if _, err := am.GetGamesCreatedCount(context.Background(), testInet); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected error: %v\tgot: %v", sql.ErrNoRows, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestDisabledAnalyticsAreNoOps(t *testing.T) {
	ctx := context.Background()

	for _, am := range []*AnalyticsManager{nil, NewDbManager(nil).Analytics} {
		if am.Enabled() {
			t.Fatal("analytics without a querier must be disabled")
		}
		if err := am.IncrementGamesCreatedCount(ctx, testInet); err != nil {
			t.Fatal(err)
		}
		if err := am.RecordGameResult(ctx, testInet, true); err != nil {
			t.Fatal(err)
		}
		count, err := am.GetGamesCreatedCount(ctx, testInet)
		if err != nil || count != 0 {
			t.Fatalf("expected 0 games, got: %d, %v", count, err)
		}
		analytics, err := am.GetAnalytics(ctx, testInet)
		if err != nil || analytics.GamesCreated != 0 {
			t.Fatalf("expected empty analytics, got: %+v, %v", analytics, err)
		}
	}
}
