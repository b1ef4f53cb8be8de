package core

import (
	"strings"

	"github.com/folioscope/folio/internal/contract"
	"github.com/folioscope/folio/schema"
)

// Mode resolution reasons.
const (
	reasonExternalPermitted = "External analysis permitted"
	reasonLocalEnforced     = "Local analysis enforced"
	reasonConsentMissing    = "Consent for external services not granted; using local mode"
)

// ResolveMode decides the analysis mode from the requested value and the recorded consent.
// Unknown requests fall back to local; external without consent downgrades to local.
func ResolveMode(requested schema.AnalysisMode, consent schema.ConsentState) schema.ModeResolution {
	normalized := schema.AnalysisMode(strings.ToLower(strings.TrimSpace(string(requested))))
	if normalized == "" {
		normalized = schema.LocalMode
	}
	if _, ok := schema.ValidAnalysisModes[normalized]; !ok {
		contract.Logger().Warn("unknown analysis mode, using local", "requested", string(requested))
		normalized = schema.LocalMode
	}

	allowed := consent.Granted && strings.HasPrefix(strings.ToLower(consent.Decision), "allow")

	resolved := normalized
	if normalized == schema.AutoMode {
		resolved = schema.LocalMode
		if allowed {
			resolved = schema.ExternalMode
		}
	}

	if resolved == schema.ExternalMode && !allowed {
		return schema.ModeResolution{Requested: requested, Resolved: schema.LocalMode, Reason: reasonConsentMissing}
	}

	reason := reasonLocalEnforced
	if resolved == schema.ExternalMode {
		reason = reasonExternalPermitted
	}
	return schema.ModeResolution{Requested: requested, Resolved: resolved, Reason: reason}
}
