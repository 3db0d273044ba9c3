package teardown

import (
	"context"
	"fmt"

	"github.com/imamik/sandbox-teardown/internal/platform/orchestration"
	"github.com/imamik/sandbox-teardown/internal/util/async"
)

// action is the outcome of the per-resource decision.
type action string

const (
	actionDelete   action = "delete"
	actionPowerOff action = "power_off"
	actionKeep     action = "keep"
	actionFailed   action = "failed"
)

type outcome struct {
	name   string
	action action
}

// powerOffAndDeleteResources handles every deployed resource created in the
// reservation. Resources are decided in parallel; the ones to delete are then
// removed with a single bulk call.
func (r *run) powerOffAndDeleteResources(ctx context.Context) error {
	resources := orchestration.ResourcesCreatedInReservation(r.details, r.reservationID)

	deployed := make([]*orchestration.ResourceInfo, 0, len(resources))
	for _, res := range resources {
		info, err := r.api.GetResourceDetails(ctx, res.Name)
		if err != nil {
			return fmt.Errorf("failed to get details of resource %s: %w", res.Name, err)
		}
		if !info.IsDeployed() {
			r.report.Skipped = append(r.report.Skipped, res.Name)
			continue
		}
		deployed = append(deployed, info)
	}

	outcomes, err := async.Map(ctx, deployed, r.workers, func(ctx context.Context, info *orchestration.ResourceInfo) (outcome, error) {
		return r.powerOffOrDelete(ctx, info), nil
	})
	if err != nil {
		return fmt.Errorf("failed to process resources: %w", err)
	}

	var toDelete []string
	for _, o := range outcomes {
		recordAction(o.action)
		switch o.action {
		case actionDelete:
			toDelete = append(toDelete, o.name)
		case actionPowerOff:
			r.report.PoweredOff = append(r.report.PoweredOff, o.name)
		case actionKeep:
			r.report.Skipped = append(r.report.Skipped, o.name)
		case actionFailed:
			r.report.Failed = append(r.report.Failed, o.name)
		}
	}
	r.report.MarkedForDeletion = toDelete

	if len(toDelete) == 0 {
		return nil
	}
	return r.removeResources(ctx, toDelete)
}

// powerOffOrDelete runs the decision for one resource. Errors are logged
// and never leave this function.
func (r *run) powerOffOrDelete(ctx context.Context, info *orchestration.ResourceInfo) outcome {
	a, err := r.decide(ctx, info)
	if err != nil {
		r.obs.Event(Event{
			Type:     EventResourceFailed,
			Phase:    PhaseResources,
			Resource: info.Name,
			Message:  fmt.Sprintf("Error deleting or powering off deployed app %s in reservation %s", info.Name, r.reservationID),
			Err:      err,
		})
		return outcome{name: info.Name, action: actionFailed}
	}
	return outcome{name: info.Name, action: a}
}

func (r *run) decide(ctx context.Context, info *orchestration.ResourceInfo) (action, error) {
	name := info.Name

	if orchestration.BoolParam(info, orchestration.ParamAutoDelete, true) {
		r.obs.Event(Event{
			Type:     EventResourceDeleting,
			Phase:    PhaseResources,
			Resource: name,
			Message:  fmt.Sprintf("Executing 'Delete' on deployed app %s in reservation %s", name, r.reservationID),
		})
		if err := r.announcer.announceDelete(ctx); err != nil {
			return actionFailed, err
		}
		// The bulk removal destroys the deployment on the server side.
		return actionDelete, nil
	}

	if !orchestration.BoolParam(info, orchestration.ParamAutoPowerOff, true) {
		r.obs.Event(Event{
			Type:     EventResourceKept,
			Phase:    PhaseResources,
			Resource: name,
			Message:  fmt.Sprintf("Auto Power Off is disabled for deployed app %s in reservation %s", name, r.reservationID),
		})
		return actionKeep, nil
	}

	r.obs.Event(Event{
		Type:     EventResourcePoweringOff,
		Phase:    PhaseResources,
		Resource: name,
		Message:  fmt.Sprintf("Executing 'Power Off' on deployed app %s in reservation %s", name, r.reservationID),
	})
	if err := r.announcer.announcePowerOff(ctx); err != nil {
		return actionFailed, err
	}
	if err := r.api.ExecuteResourceConnectedCommand(ctx, r.reservationID, name, r.powerOffCommand, r.powerOffTag); err != nil {
		return actionFailed, fmt.Errorf("failed to power off %s: %w", name, err)
	}
	return actionPowerOff, nil
}

// removeResources removes names from the reservation. A refusal to remove a
// deployed resource is reported and tolerated.
func (r *run) removeResources(ctx context.Context, names []string) error {
	err := r.api.RemoveResourcesFromReservation(ctx, r.reservationID, names)
	if err == nil {
		return nil
	}
	if !orchestration.IsRemoveDeployedResource(err) {
		return fmt.Errorf("failed to remove resources from reservation: %w", err)
	}

	r.obs.Event(Event{
		Type:    EventRemoveFailed,
		Phase:   PhaseResources,
		Message: "Error executing RemoveResourcesFromReservation command",
		Err:     err,
	})
	r.reportWarning(ctx, orchestration.ErrorDescription(err))
	return nil
}
