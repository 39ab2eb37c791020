package models

import "fmt"

// Market is the odds service's numeric market-type code.
type Market int

const (
	MarketMoneyline Market = 83
	MarketSpread    Market = 401
	MarketTotal     Market = 402
)

func (m Market) String() string {
	switch m {
	case MarketMoneyline:
		return "moneyline"
	case MarketSpread:
		return "spread"
	case MarketTotal:
		return "total"
	}
	return fmt.Sprintf("mtid_%d", int(m))
}

// ParseMarket maps a config name to a market code.
func ParseMarket(name string) (Market, error) {
	switch name {
	case "moneyline", "ml":
		return MarketMoneyline, nil
	case "spread", "point-spread":
		return MarketSpread, nil
	case "total", "over-under":
		return MarketTotal, nil
	}
	return 0, fmt.Errorf("unknown market %q", name)
}

// ParseMarkets resolves the config market list, defaulting to spread+moneyline.
func ParseMarkets(names []string) ([]Market, error) {
	if len(names) == 0 {
		return []Market{MarketSpread, MarketMoneyline}, nil
	}
	out := make([]Market, 0, len(names))
	for _, n := range names {
		m, err := ParseMarket(n)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
