package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/op/go-logging"

	"statuspage-geckoboard/service"
)

var log = logging.MustGetLogger("statuspage-geckoboard")

type Reporter struct {
	Statuspage service.IIncidentSource
	Geckoboard service.IWidgetPusher
}

// Summary describes what a single Run did.
type Summary struct {
	Incidents int
	Skipped   int
	Message   string
	Pushed    bool
}

// Run fetches unresolved incidents and pushes one status message to the
// widget. Maintenance incidents never produce a message; if every incident
// is maintenance nothing is pushed.
func (r *Reporter) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	if err := r.Statuspage.FetchUnresolvedIncidents(ctx); err != nil {
		return summary, err
	}
	incidents := r.Statuspage.Incidents()
	summary.Incidents = len(incidents)

	if len(incidents) == 0 {
		log.Info("no unresolved incidents")
		msg, err := r.Geckoboard.BuildMessage(service.StatusOK, "", "")
		if err != nil {
			return summary, fmt.Errorf("build ok message: %w", err)
		}
		summary.Message = msg
		if err := r.Geckoboard.PushToWidget(ctx, msg); err != nil {
			return summary, err
		}
		summary.Pushed = true
		return summary, nil
	}

	if err := r.Statuspage.FetchComponentGroups(ctx); err != nil {
		return summary, err
	}

	var messages []string
	for _, incident := range incidents {
		if incident.IsMaintenance() {
			log.Debugf("skipping maintenance incident %s", incident.ID)
			summary.Skipped++
			continue
		}

		// Only the last component is reported.
		var platformName, productName string
		for _, component := range incident.Components {
			productName = component.Name
			platformName, _ = r.Statuspage.LookupPlatform(component.GroupID)
		}

		msg, err := r.Geckoboard.BuildMessage(service.StatusDown, platformName, productName)
		if err != nil {
			log.Warningf("skipping incident %s: %v", incident.ID, err)
			summary.Skipped++
			continue
		}
		log.Noticef("incident %s: %s - %s is down", incident.ID, platformName, productName)
		messages = append(messages, msg)
	}

	summary.Message = strings.Join(messages, "")
	if summary.Message == "" {
		log.Info("all unresolved incidents are maintenance, nothing to push")
		return summary, nil
	}

	if err := r.Geckoboard.PushToWidget(ctx, summary.Message); err != nil {
		return summary, err
	}
	summary.Pushed = true
	return summary, nil
}
