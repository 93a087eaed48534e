package service

import (
	"testing"

	"github.com/gemdesk/internal/constants"
)

func TestUpdateDashboardSettingClampsThresholds(t *testing.T) {
	cases := []struct {
		name  string
		input map[string]interface{}
		want  map[string]int
	}{
		{
			name: "out_of_range_values_reset",
			input: map[string]interface{}{"alert": map[string]interface{}{
				"pending_vendors_threshold": 99999,
				"new_enquiries_threshold":   "25",
				"pending_orders_threshold":  0,
			}},
			want: map[string]int{"pending_vendors_threshold": 1, "new_enquiries_threshold": 25, "pending_orders_threshold": 20},
		},
		{
			name:  "missing_alert_uses_defaults",
			input: map[string]interface{}{},
			want:  map[string]int{"pending_vendors_threshold": 1, "new_enquiries_threshold": 10, "pending_orders_threshold": 20},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewSettingService(newMockSettingRepo())
			result, err := svc.Update(constants.SettingKeyDashboardConfig, tc.input)
			if err != nil {
				t.Fatalf("update dashboard config failed: %v", err)
			}
			alert, ok := result["alert"].(map[string]interface{})
			if !ok {
				t.Fatalf("alert payload type %T", result["alert"])
			}
			for key, want := range tc.want {
				if got := readInt(alert, key, -1); got != want {
					t.Fatalf("%s want %d got %d", key, want, got)
				}
			}

			stored, err := svc.GetDashboardSetting()
			if err != nil {
				t.Fatalf("get dashboard setting failed: %v", err)
			}
			if int(stored.Alert.NewEnquiriesThreshold) != tc.want["new_enquiries_threshold"] {
				t.Fatalf("stored setting mismatch: %+v", stored.Alert)
			}
		})
	}
}
