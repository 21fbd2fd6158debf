package core

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func groupTx(amount string, head string) Transaction {
	d, _ := decimal.NewFromString(amount)
	return Transaction{
		Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Description: "test",
		Amount:      d,
		Category:    head,
	}
}

func TestGroupsNamesAndLookup(t *testing.T) {
	g := NewGroups(map[string][]Transaction{
		"Marketing ": {groupTx("100", "Ads")},
		"Ops":        {groupTx("50", "Rent"), groupTx("30", "Rent")},
		"Empty":      {},
	})

	names := g.Names()
	if len(names) != 2 || names[0] != "Marketing" || names[1] != "Ops" {
		t.Fatalf("unexpected names %v", names)
	}
	if g.Len() != 3 {
		t.Fatalf("Len = %d, want 3", g.Len())
	}

	txs, err := g.Transactions("Ops")
	if err != nil || len(txs) != 2 {
		t.Fatalf("Ops lookup = %v, %v", txs, err)
	}
	if _, err := g.Transactions("Missing"); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("missing group error = %v, want ErrUnknownCategory", err)
	}

	all, err := g.Transactions(CombinedCategory)
	if err != nil || len(all) != 3 {
		t.Fatalf("combined lookup = %d records, err=%v", len(all), err)
	}
}

func TestGroupsShares(t *testing.T) {
	g := NewGroups(map[string][]Transaction{
		"Ops":       {groupTx("300", "Rent")},
		"Marketing": {groupTx("100", "Ads")},
	})

	shares := g.Shares()
	if len(shares) != 2 {
		t.Fatalf("got %d shares", len(shares))
	}
	if shares[0].Name != "Ops" || shares[0].Share != 0.75 {
		t.Fatalf("top share = %+v", shares[0])
	}
	if shares[1].Name != "Marketing" || shares[1].Share != 0.25 {
		t.Fatalf("second share = %+v", shares[1])
	}
}

func TestGroupsHeadShares(t *testing.T) {
	g := NewGroups(map[string][]Transaction{
		"Ops": {groupTx("60", "Rent"), groupTx("40", "Cleaning")},
	})

	heads, err := g.HeadShares("Ops")
	if err != nil || len(heads) != 2 {
		t.Fatalf("heads = %v, err=%v", heads, err)
	}
	if heads[0].Name != "Rent" || heads[0].Share != 0.6 {
		t.Fatalf("top head = %+v", heads[0])
	}

	if _, err := g.HeadShares("Missing"); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("missing group error = %v, want ErrUnknownCategory", err)
	}
}
