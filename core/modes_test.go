package core

import (
	"testing"

	"github.com/folioscope/folio/schema"
	"github.com/stretchr/testify/assert"
)

func TestResolveMode(t *testing.T) {
	granted := schema.ConsentState{Granted: true, Decision: "allow_always"}
	denied := schema.ConsentState{Granted: false, Decision: "deny"}
	grantedButDenyDecision := schema.ConsentState{Granted: true, Decision: "deny_once"}

	tests := []struct {
		name      string
		requested schema.AnalysisMode
		consent   schema.ConsentState
		resolved  schema.AnalysisMode
		reason    string
	}{
		{"local stays local", schema.LocalMode, granted, schema.LocalMode, reasonLocalEnforced},
		{"external with consent", schema.ExternalMode, granted, schema.ExternalMode, reasonExternalPermitted},
		{"external without consent", schema.ExternalMode, denied, schema.LocalMode, reasonConsentMissing},
		{"external with deny decision", schema.ExternalMode, grantedButDenyDecision, schema.LocalMode, reasonConsentMissing},
		{"auto with consent", schema.AutoMode, granted, schema.ExternalMode, reasonExternalPermitted},
		{"auto without consent", schema.AutoMode, denied, schema.LocalMode, reasonLocalEnforced},
		{"mixed case", "ExTeRnAl", granted, schema.ExternalMode, reasonExternalPermitted},
		{"unknown falls back", "cloud", granted, schema.LocalMode, reasonLocalEnforced},
		{"empty is local", "", granted, schema.LocalMode, reasonLocalEnforced},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ResolveMode(tt.requested, tt.consent)
			assert.Equal(t, tt.requested, res.Requested)
			assert.Equal(t, tt.resolved, res.Resolved)
			assert.Equal(t, tt.reason, res.Reason)
		})
	}
}

func FuzzResolveMode(f *testing.F) {
	for _, seed := range []string{"local", "external", "auto", "AUTO", "", "??"} {
		f.Add(seed, true, "allow")
	}
	f.Fuzz(func(t *testing.T, requested string, granted bool, decision string) {
		res := ResolveMode(schema.AnalysisMode(requested), schema.ConsentState{Granted: granted, Decision: decision})
		if res.Resolved != schema.LocalMode && res.Resolved != schema.ExternalMode {
			t.Errorf("resolved mode %q is neither local nor external", res.Resolved)
		}
		if res.Resolved == schema.ExternalMode && !granted {
			t.Errorf("external mode resolved without consent")
		}
	})
}
