package widgets

import (
	"errors"
	"strings"
	"testing"

	"gitlab.com/tinyland/lab/browserhome/pkg/app"
	"gitlab.com/tinyland/lab/browserhome/pkg/collectors/crypto"
	"gitlab.com/tinyland/lab/browserhome/pkg/dom"
)

func ticker(id, symbol, name string, price, h1, h24, d7 float64) *crypto.Ticker {
	t := &crypto.Ticker{ID: id, Symbol: symbol, Name: name}
	t.Quotes.USD = crypto.Quote{
		Price:            price,
		PercentChange1h:  h1,
		PercentChange24h: h24,
		PercentChange7d:  d7,
	}
	return t
}

func cryptoResults() []crypto.Result {
	return []crypto.Result{
		{ID: "btc-bitcoin", Ticker: ticker("btc-bitcoin", "BTC", "Bitcoin", 64123.456, 0.12, 1.5, -3.2)},
		{ID: "doge-dogecoin", Err: errors.New("doge-dogecoin: boom")},
		{ID: "eth-ethereum", Ticker: ticker("eth-ethereum", "ETH", "Ethereum", 3012.1, -0.3, -2.25, 4)},
		{ID: "usdc-usd-coin", Ticker: ticker("usdc-usd-coin", "USDC", "USD Coin", 1, 0, 0.004, 0)},
	}
}

func cryptoBlocks(tree *dom.Tree) []dom.Node {
	c, _ := tree.ElementByID(CryptoContainerID)
	return tree.ElementsByClass(c, CryptoBlockClass)
}

func TestCryptoWidget_RendersSucceededInOrder(t *testing.T) {
	w := NewCryptoWidget(nil)
	tree, _ := mountWidget(t, w)

	deliver(t, w, cryptoResults(), nil)

	if w.State() != app.StatePopulated {
		t.Errorf("State() = %v, want populated", w.State())
	}
	blocks := cryptoBlocks(tree)
	if len(blocks) != 3 {
		t.Fatalf("got %d blocks, want 3", len(blocks))
	}

	tests := []struct {
		symbol   string
		category string
		price    string
		changes  []string
	}{
		{"BTCBitcoin", crypto.Positive, "$64,123.46", []string{"+0.12%", "+1.50%", "-3.20%"}},
		{"ETHEthereum", crypto.Negative, "$3,012.10", []string{"-0.30%", "-2.25%", "+4.00%"}},
		{"USDCUSD Coin", crypto.Neutral, "$1.00", []string{"+0.00%", "+0.00%", "+0.00%"}},
	}
	for i, tt := range tests {
		b := blocks[i]
		if !dom.HasClass(b, tt.category) {
			class, _ := tree.Attribute(b, "class")
			t.Errorf("block %d class = %q, want %s", i, class, tt.category)
		}
		if got := dom.TextContent(tree.ElementsByClass(b, "listBlockSymbol")[0]); got != tt.symbol {
			t.Errorf("block %d symbol = %q, want %q", i, got, tt.symbol)
		}
		if got := dom.TextContent(tree.ElementsByClass(b, "listBlockPrice")[0]); got != tt.price {
			t.Errorf("block %d price = %q, want %q", i, got, tt.price)
		}
		for j, class := range []string{"listBlock1h", "listBlock24h", "listBlock7d"} {
			if got := dom.TextContent(tree.ElementsByClass(b, class)[0]); got != tt.changes[j] {
				t.Errorf("block %d %s = %q, want %q", i, class, got, tt.changes[j])
			}
		}
	}
}

func TestCryptoWidget_RefreshDoesNotDuplicate(t *testing.T) {
	w := NewCryptoWidget(nil)
	tree, _ := mountWidget(t, w)

	deliver(t, w, cryptoResults(), nil)
	deliver(t, w, cryptoResults(), nil)

	if n := len(cryptoBlocks(tree)); n != 3 {
		t.Errorf("got %d blocks after refresh, want 3", n)
	}
}

func TestCryptoWidget_AllFailedShowsOneError(t *testing.T) {
	tests := []struct {
		name  string
		first error
		want  string
	}{
		{"policy", errors.New("fetch blocked by CORS"), crypto.DetailPolicy},
		{"payment", errors.New("status 402 Payment Required"), crypto.DetailPayment},
		{"network", errors.New("Network request failed"), crypto.DetailNetwork},
		{"other", errors.New("bad gateway"), "bad gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewCryptoWidget(nil)
			tree, _ := mountWidget(t, w)
			deliver(t, w, cryptoResults(), nil)

			deliver(t, w, nil, &crypto.AllFailedError{First: tt.first})

			if w.State() != app.StateFailed {
				t.Errorf("State() = %v, want failed", w.State())
			}
			if n := len(cryptoBlocks(tree)); n != 0 {
				t.Errorf("got %d blocks after failure, want 0", n)
			}
			c, _ := tree.ElementByID(CryptoContainerID)
			errs := tree.ElementsByClass(c, CryptoErrorClass)
			if len(errs) != 1 {
				t.Fatalf("got %d error blocks, want 1", len(errs))
			}
			if role, _ := tree.Attribute(errs[0], "role"); role != "alert" {
				t.Errorf("error role = %q, want alert", role)
			}
			got := dom.TextContent(errs[0])
			if !strings.HasPrefix(got, crypto.ErrorHeading) {
				t.Errorf("error text %q does not start with the heading", got)
			}
			if !strings.HasSuffix(got, tt.want) {
				t.Errorf("error text = %q, want detail %q", got, tt.want)
			}
		})
	}
}

func TestCryptoWidget_RecoversAfterFailure(t *testing.T) {
	w := NewCryptoWidget(nil)
	tree, _ := mountWidget(t, w)

	deliver(t, w, nil, &crypto.AllFailedError{})
	deliver(t, w, cryptoResults(), nil)

	c, _ := tree.ElementByID(CryptoContainerID)
	if n := len(tree.ElementsByClass(c, CryptoErrorClass)); n != 0 {
		t.Errorf("error block survived a successful refresh")
	}
	if n := len(cryptoBlocks(tree)); n != 3 {
		t.Errorf("got %d blocks, want 3", n)
	}
	if w.State() != app.StatePopulated {
		t.Errorf("State() = %v, want populated", w.State())
	}
}

func TestCryptoWidget_GenericDetailWithoutCause(t *testing.T) {
	w := NewCryptoWidget(nil)
	tree, _ := mountWidget(t, w)

	deliver(t, w, nil, &crypto.AllFailedError{})

	c, _ := tree.ElementByID(CryptoContainerID)
	errs := tree.ElementsByClass(c, CryptoErrorClass)
	if len(errs) != 1 || !strings.HasSuffix(dom.TextContent(errs[0]), crypto.DetailGeneric) {
		t.Errorf("expected a single %q error block", crypto.DetailGeneric)
	}
}
