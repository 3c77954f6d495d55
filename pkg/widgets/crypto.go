package widgets

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/browserhome/pkg/collectors/crypto"
	"gitlab.com/tinyland/lab/browserhome/pkg/dom"
)

// Crypto element ids and classes.
const (
	CryptoContainerID = "cryptoContainer"
	CryptoBlockClass  = "listBlock"
	CryptoErrorClass  = "cryptoError"
)

// CryptoWidget lists one block per coin in watch-list order.
type CryptoWidget struct {
	base
	container dom.Node
}

// NewCryptoWidget creates a crypto widget loading from the "crypto"
// collector through f.
func NewCryptoWidget(f Fetcher, opts ...Option) *CryptoWidget {
	return &CryptoWidget{base: newBase(crypto.Name, "Crypto", f, opts)}
}

// Build creates the empty container.
func (w *CryptoWidget) Build(doc dom.Document) (dom.Node, error) {
	w.container = element(doc, "div",
		"id", CryptoContainerID, "class", "widget",
		"role", "region", "aria-label", "Cryptocurrency prices")
	w.mounted(doc)
	return w.container, nil
}

// Update renders the settled fetches. Earlier blocks are removed first so
// a refresh never duplicates coins.
func (w *CryptoWidget) Update(msg tea.Msg) (tea.Cmd, error) {
	ev, ok := w.ownUpdate(msg)
	if !ok {
		return nil, nil
	}

	clearChildren(w.doc, w.container, CryptoBlockClass)
	clearChildren(w.doc, w.container, CryptoErrorClass)

	if ev.Err != nil {
		first := ev.Err
		var all *crypto.AllFailedError
		if errors.As(ev.Err, &all) {
			first = all.First
		}
		w.logger.Warn("crypto unavailable", "error", ev.Err)
		w.appendError(crypto.ClassifyError(first))
		w.settle(false)
		return nil, nil
	}

	results, ok := ev.Data.([]crypto.Result)
	if !ok {
		w.settle(false)
		return nil, fmt.Errorf("crypto: unexpected data %T", ev.Data)
	}
	for _, r := range crypto.Succeeded(results) {
		w.appendBlock(r.Ticker)
	}
	w.settle(true)
	return nil, nil
}

// appendBlock adds one coin:
//
//	div.listBlock.<category>
//	  div.listBlockSymbol  BTC <span.listBlockName>Bitcoin</span>
//	  div.listBlockPrice   $1,234.57
//	  div.listBlockPriceChanges
//	    div.listBlock1h  div.listBlock24h  div.listBlock7d
func (w *CryptoWidget) appendBlock(t *crypto.Ticker) {
	doc := w.doc
	q := t.USD()

	block := element(doc, "div", "class", CryptoBlockClass+" "+crypto.Category(q.PercentChange24h))

	symbol := element(doc, "div", "class", "listBlockSymbol")
	doc.SetText(symbol, t.Symbol)
	name := element(doc, "span", "class", "listBlockName")
	doc.SetText(name, t.Name)
	doc.AppendChild(symbol, name)

	price := element(doc, "div", "class", "listBlockPrice")
	doc.SetText(price, crypto.FormatPrice(q.Price))

	changes := element(doc, "div", "class", "listBlockPriceChanges")
	for _, c := range []struct {
		class string
		value float64
	}{
		{"listBlock1h", q.PercentChange1h},
		{"listBlock24h", q.PercentChange24h},
		{"listBlock7d", q.PercentChange7d},
	} {
		el := element(doc, "div", "class", c.class)
		doc.SetText(el, crypto.FormatChange(c.value))
		doc.AppendChild(changes, el)
	}

	doc.AppendChild(block, symbol)
	doc.AppendChild(block, price)
	doc.AppendChild(block, changes)
	doc.AppendChild(w.container, block)
}

func (w *CryptoWidget) appendError(detail string) {
	doc := w.doc
	box := element(doc, "div", "class", CryptoErrorClass+" error", "role", "alert")
	heading := element(doc, "div", "class", "cryptoErrorHeading")
	doc.SetText(heading, crypto.ErrorHeading)
	text := element(doc, "div", "class", "cryptoErrorDetail")
	doc.SetText(text, detail)
	doc.AppendChild(box, heading)
	doc.AppendChild(box, text)
	doc.AppendChild(w.container, box)
}
