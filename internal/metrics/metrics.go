package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ContextResolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sitework_context_resolutions_total",
		Help: "Tenant context resolution attempts by outcome.",
	}, []string{"outcome"})

	AuthzDenialsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sitework_authz_denials_total",
		Help: "Requests short-circuited by an authorization guard.",
	}, []string{"guard"})

	ShareLinksIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sitework_share_links_issued_total",
		Help: "Share links generated.",
	})

	ShareValidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sitework_share_validations_total",
		Help: "Portal share-token validation attempts by outcome.",
	}, []string{"outcome"})

	ShareRevocationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sitework_share_revocations_total",
		Help: "Share links revoked.",
	})
)
