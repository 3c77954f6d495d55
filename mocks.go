package main

import (
	"gitlab.com/tinyland/lab/browserhome/pkg/collectors"
	"gitlab.com/tinyland/lab/browserhome/pkg/collectors/crypto"
	"gitlab.com/tinyland/lab/browserhome/pkg/collectors/links"
	"gitlab.com/tinyland/lab/browserhome/pkg/collectors/weather"
)

// mockRegistry registers collectors that answer with canned data, so the
// page can be exercised without network access.
func mockRegistry() (*collectors.Registry, error) {
	registry := collectors.NewRegistry()
	for _, c := range []collectors.Collector{
		collectors.NewMockCollector(weather.Name, 0, collectors.WithData(mockWeather())),
		collectors.NewMockCollector(crypto.Name, 0, collectors.WithData(mockCrypto())),
		collectors.NewMockCollector(links.Name, 0, collectors.WithData(mockLinks())),
	} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func mockWeather() *weather.Report {
	return &weather.Report{
		Coordinates: weather.DefaultCoordinates,
		Location:    "Rochester, New York",
		Reading: &weather.Reading{
			Code:                        2,
			Description:                 weather.Describe(2),
			Temperature:                 68.4,
			ApparentTemperature:         66.9,
			Humidity:                    61,
			PrecipitationProbabilityMax: 35,
			Rain:                        0.02,
			CloudCover:                  48,
			WindSpeed:                   9.2,
			WindDirection:               250,
			Compass:                     weather.DegreesToDirection(250),
			UVIndexMax:                  5.1,
		},
	}
}

func mockCrypto() []crypto.Result {
	tick := func(id, symbol, name string, price, h1, h24, d7 float64) crypto.Result {
		t := &crypto.Ticker{ID: id, Symbol: symbol, Name: name}
		t.Quotes.USD = crypto.Quote{Price: price, PercentChange1h: h1, PercentChange24h: h24, PercentChange7d: d7}
		return crypto.Result{ID: id, Ticker: t}
	}
	return []crypto.Result{
		tick("xrp-xrp", "XRP", "XRP", 0.5231, 0.1, -1.42, 3.3),
		tick("btc-bitcoin", "BTC", "Bitcoin", 64210.77, 0.05, 2.31, 5.02),
		tick("eth-ethereum", "ETH", "Ethereum", 3120.4, -0.2, 1.08, -0.5),
		tick("sol-solana", "SOL", "Solana", 142.9, 0.8, -3.6, 7.9),
		tick("usdc-usd-coin", "USDC", "USD Coin", 1, 0, 0, 0),
	}
}

func mockLinks() []links.Link {
	return []links.Link{
		{Name: "Search", URL: "https://duckduckgo.com", Icon: "images/search.png", Section: "general"},
		{Name: "Mail", URL: "https://mail.example.com", Icon: "images/mail.png", Section: "email"},
		{Name: "GitLab", URL: "https://gitlab.com/dashboard/projects", Icon: "images/gitlab.png", Section: "code"},
		{Name: "Go docs", URL: "https://pkg.go.dev/std", Icon: "images/go.png", Section: "doc"},
	}
}
