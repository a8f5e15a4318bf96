package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Result labels
const (
	ResultOK       = "ok"
	ResultFailed   = "failed"
	ResultDenied   = "denied"
	ResultNotFound = "not_found"
)

var (
	SubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "submissions_total",
			Help: "Submissions sent to the review channel by result",
		},
		[]string{"result"},
	)

	ModerationDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moderation_decisions_total",
			Help: "Moderation decisions by decision and result",
		},
		[]string{"decision", "result"},
	)

	BroadcastSendsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "broadcast_sends_total",
			Help: "Broadcast deliveries by result",
		},
		[]string{"result"},
	)

	BansTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ban_actions_total",
			Help: "Ban list changes by action",
		},
		[]string{"action"},
	)
)

// Register adds all collectors to reg
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		SubmissionsTotal,
		ModerationDecisionsTotal,
		BroadcastSendsTotal,
		BansTotal,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
