package explorer

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/dd0wney/cluso-archflow/pkg/architecture"
	"github.com/dd0wney/cluso-archflow/pkg/logging"
	"github.com/dd0wney/cluso-archflow/pkg/metrics"
)

// plantDataset has two architectures:
//
//	1 "Plant":        Pump-PPN -> Valve-PPN -> Flow-PPN -> Sensor-CN -> Gate-CN -> Alarm-CN
//	                  Override-CN -suppress-> Gate-CN
//	2 "Control only": the CN network alone
func plantDataset() *architecture.Dataset {
	cn := architecture.Network{
		Network: "CN",
		Nodes: []architecture.DataNode{
			{Node: "Sensor", Type: "comp", Class: "input"},
			{Node: "Override", Type: "comp", Class: "input"},
			{Node: "Gate", Type: "suppression", Class: "intermediate"},
			{Node: "Alarm", Type: "all", Class: "output", Desc: "Sounds when the pump flow drops"},
		},
		Links: []architecture.DataLink{
			{Source: "Sensor", Target: "Gate", Type: "standard"},
			{Source: "Override", Target: "Gate", Type: "suppress"},
			{Source: "Gate", Target: "Alarm", Type: "standard"},
		},
	}
	ppn := architecture.Network{
		Network: "PPN",
		Nodes: []architecture.DataNode{
			{Node: "Pump", Type: "comp", Class: "input", Desc: "Main feed pump"},
			{Node: "Valve", Type: "any", Class: "intermediate"},
			{Node: "Flow", Type: "comp", Class: "output"},
		},
		Links: []architecture.DataLink{
			{Source: "Pump", Target: "Valve", Type: "standard"},
			{Source: "Valve", Target: "Flow", Type: "standard"},
		},
	}

	return &architecture.Dataset{
		Architectures: []architecture.Architecture{
			{
				ID:     1,
				Name:   "Plant",
				Layers: []architecture.Layer{{Layer: 1, Network: "PPN"}, {Layer: 2, Network: "CN"}},
				Routes: []architecture.ArcRoute{
					{SourceNet: "PPN", SourceNode: "Flow", DestNet: "CN", DestNode: "Sensor"},
				},
			},
			{
				ID:     2,
				Name:   "Control only",
				Layers: []architecture.Layer{{Layer: 1, Network: "CN"}},
			},
		},
		Networks: []architecture.Network{architecture.Normalize(cn), architecture.Normalize(ppn)},
	}
}

func newTestSession(t *testing.T) (*Session, *metrics.Registry) {
	t.Helper()
	reg := metrics.NewRegistry()
	s := NewSession(plantDataset(), Options{Logger: logging.NewNopLogger(), Metrics: reg})
	return s, reg
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return m.Counter.GetValue()
}

func cacheCount(t *testing.T, reg *metrics.Registry, result string) float64 {
	t.Helper()
	c, err := reg.GraphCacheTotal.GetMetricWithLabelValues(result)
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	return counterValue(t, c)
}
