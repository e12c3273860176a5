package engine

import "github.com/rs/zerolog"

// CutStatistics collects node and cutoff counts for one search.
type CutStatistics struct {
	Nodes       uint64
	TTProbes    uint64
	TTHits      uint64
	TTCutoffs   uint64
	BetaCutoffs uint64
}

func (c *CutStatistics) add(o CutStatistics) {
	c.Nodes += o.Nodes
	c.TTProbes += o.TTProbes
	c.TTHits += o.TTHits
	c.TTCutoffs += o.TTCutoffs
	c.BetaCutoffs += o.BetaCutoffs
}

// HitRate is the share of probes that found their position.
func (c CutStatistics) HitRate() float64 {
	if c.TTProbes == 0 {
		return 0
	}
	return float64(c.TTHits) / float64(c.TTProbes)
}

func (c CutStatistics) MarshalZerologObject(e *zerolog.Event) {
	e.Uint64("nodes", c.Nodes).
		Uint64("ttProbes", c.TTProbes).
		Uint64("ttHits", c.TTHits).
		Uint64("ttCutoffs", c.TTCutoffs).
		Uint64("betaCutoffs", c.BetaCutoffs)
}
