// Package metrics defines the console's custom Prometheus metrics. HTTP
// request metrics for the console's own routes come from echoprometheus.
//
// All metrics register with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "devnexus_console"

// ── Backend metrics ───────────────────────────────────────────────────────────

// BackendRequestsTotal counts calls made by the request layer.
// Labels:
//   - operation: logical call name (e.g. "auth_login", "project_update")
//   - outcome: "ok", "client_error", "server_error", "unauthorized" or "transport_error"
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of backend REST calls, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// BackendRequestDuration measures backend call latency including body decode.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of backend REST calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionEventsTotal counts session lifecycle changes.
// Label:
//   - event: "login", "signup", "verification_required", "logout", "expired", "restored"
var SessionEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_events_total",
		Help:      "Total number of session lifecycle events.",
	},
	[]string{"event"},
)

// ── Wizard metrics ────────────────────────────────────────────────────────────

// WizardTransitionsTotal counts wizard step changes.
// Labels:
//   - from / to: step names (e.g. "platform" → "media")
var WizardTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "wizard_transitions_total",
		Help:      "Total number of submission wizard step transitions.",
	},
	[]string{"from", "to"},
)

// WizardBlockedTotal counts attempts that did not change the step.
// Label:
//   - reason: "validation", "persist_failed", "busy", "incomplete"
var WizardBlockedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "wizard_blocked_total",
		Help:      "Total number of wizard actions blocked before completing.",
	},
	[]string{"reason"},
)

// ProjectsHandedOffTotal counts drafts closed from the confirmation overlay.
// Label:
//   - outcome: "submit" or "draft"
var ProjectsHandedOffTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projects_handed_off_total",
		Help:      "Total number of drafts finalised from the review step.",
	},
	[]string{"outcome"},
)

// MediaUploadedTotal counts image files accepted by the backend.
var MediaUploadedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "media_uploaded_total",
		Help:      "Total number of media files uploaded, by slot.",
	},
	[]string{"kind"},
)
