package orchestration

import "strings"

// Custom parameter names that control teardown policy.
const (
	ParamAutoDelete   = "auto_delete"
	ParamAutoPowerOff = "auto_power_off"
)

// ResourcesCreatedInReservation returns the resources that were provisioned by
// the given reservation, dropping shared resources that only joined it.
func ResourcesCreatedInReservation(details *ReservationDetails, reservationID string) []ReservedResource {
	if details == nil {
		return nil
	}

	var created []ReservedResource
	for _, r := range details.ReservationDescription.Resources {
		if r.CreatedInReservation != "" && strings.EqualFold(r.CreatedInReservation, reservationID) {
			created = append(created, r)
		}
	}
	return created
}

// GetVMCustomParam looks up a VM custom parameter by name.
// The second return value is false when the resource has no VM details or no
// parameter with that name.
func GetVMCustomParam(info *ResourceInfo, name string) (CustomParam, bool) {
	if !info.IsDeployed() {
		return CustomParam{}, false
	}
	for _, p := range info.VMDetails.VMCustomParams {
		if p.Name == name {
			return p, true
		}
	}
	return CustomParam{}, false
}

// BoolParam reads a "true"/"false" custom parameter, falling back to def when
// the parameter is absent. Comparison is case-insensitive; any value other
// than "true" reads as false.
func BoolParam(info *ResourceInfo, name string, def bool) bool {
	p, ok := GetVMCustomParam(info, name)
	if !ok {
		return def
	}
	return strings.EqualFold(p.Value, "true")
}
