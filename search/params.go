package search

import "gopkg.in/yaml.v3"

// ParamBag is the concrete "parameter bag" of §4.I: algorithm tuning
// knobs, not process/CLI configuration (which is out of scope, §1).
// Fields are YAML-tagged so a host binding may load them from a config
// file via LoadParamBag, following the convention of the example corpus's
// yaml.v3-backed config loader.
type ParamBag struct {
	Seed          uint32  `yaml:"seed"`
	MaxIdleSteps  int     `yaml:"max_idle_steps"`
	Theta         float64 `yaml:"theta"`          // CHNS
	HistoryLength int     `yaml:"history_length"` // DLAS
	SelectionProb float64 `yaml:"selection_prob"` // BCLS
}

// LoadParamBag parses YAML-encoded tuning knobs.
func LoadParamBag(data []byte) (ParamBag, error) {
	var p ParamBag
	if err := yaml.Unmarshal(data, &p); err != nil {
		return ParamBag{}, err
	}
	return p, nil
}

// withDefaults fills any zero-valued field with the strategy's documented
// default (§4.F).
func (p ParamBag) withDefaults(strategy string) ParamBag {
	if p.MaxIdleSteps == 0 {
		switch strategy {
		case "BCLS":
			p.MaxIdleSteps = 150
		default:
			p.MaxIdleSteps = 1000
		}
	}
	if strategy == "CHNS" && p.Theta == 0 {
		p.Theta = 0.3
	}
	if strategy == "DLAS" && p.HistoryLength == 0 {
		p.HistoryLength = 5
	}
	if strategy == "BCLS" && p.SelectionProb == 0 {
		p.SelectionProb = 0.8
	}
	return p
}
