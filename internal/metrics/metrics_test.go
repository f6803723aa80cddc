package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorderIncrementsCollectors(t *testing.T) {
	r := NewRecorder()

	before := testutil.ToFloat64(ListingSubmissionsTotal.WithLabelValues("wizard"))
	r.ListingSubmitted("wizard")
	assert.Equal(t, before+1, testutil.ToFloat64(ListingSubmissionsTotal.WithLabelValues("wizard")))

	before = testutil.ToFloat64(WizardTransitionsTotal.WithLabelValues("images", "contact_info", "error"))
	r.WizardTransition("images", "contact_info", false)
	assert.Equal(t, before+1, testutil.ToFloat64(WizardTransitionsTotal.WithLabelValues("images", "contact_info", "error")))

	before = testutil.ToFloat64(NotificationsSentTotal.WithLabelValues("sms", "ok"))
	r.NotificationSent("sms", true)
	assert.Equal(t, before+1, testutil.ToFloat64(NotificationsSentTotal.WithLabelValues("sms", "ok")))
}
