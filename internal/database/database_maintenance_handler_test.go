package database

import (
	"errors"
	"testing"

	"vesselos/internal/domain"
)

func TestUpdateMaintenanceStatus_LegalTransition(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "chief@vesselos.test")
	vessel := createTestVessel(t, "MV Northwind")

	request := domain.MaintenanceRequest{
		VesselID:     vessel.ID,
		ReportedByID: user.ID,
		Title:        "Replace bilge pump seal",
		Priority:     domain.MaintenancePriorityHigh,
		Status:       domain.MaintenanceStatusOpen,
	}
	if err := CreateMaintenanceRequest(&request); err != nil {
		t.Fatalf("create request: %v", err)
	}

	if err := UpdateMaintenanceStatus(request.ID, domain.MaintenanceStatusInProgress); err != nil {
		t.Fatalf("open -> in_progress: %v", err)
	}
	if err := UpdateMaintenanceStatus(request.ID, domain.MaintenanceStatusCompleted); err != nil {
		t.Fatalf("in_progress -> completed: %v", err)
	}

	updated, err := GetMaintenanceRequestFromId(request.ID)
	if err != nil {
		t.Fatalf("reload request: %v", err)
	}
	if updated.Status != domain.MaintenanceStatusCompleted {
		t.Fatalf("expected completed, got %s", updated.Status)
	}
}

func TestUpdateMaintenanceStatus_IllegalTransition(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "bosun@vesselos.test")
	vessel := createTestVessel(t, "MV Southern Cross")

	request := domain.MaintenanceRequest{
		VesselID:     vessel.ID,
		ReportedByID: user.ID,
		Title:        "Radar calibration",
		Priority:     domain.MaintenancePriorityNormal,
		Status:       domain.MaintenanceStatusOpen,
	}
	if err := CreateMaintenanceRequest(&request); err != nil {
		t.Fatalf("create request: %v", err)
	}

	err := UpdateMaintenanceStatus(request.ID, domain.MaintenanceStatusCompleted)
	if !errors.Is(err, ErrInvalidStatusTransition) {
		t.Fatalf("expected ErrInvalidStatusTransition, got %v", err)
	}

	unchanged, err := GetMaintenanceRequestFromId(request.ID)
	if err != nil {
		t.Fatalf("reload request: %v", err)
	}
	if unchanged.Status != domain.MaintenanceStatusOpen {
		t.Fatalf("status should be unchanged, got %s", unchanged.Status)
	}
}

func TestGetMaintenanceRequestPage(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "engineer@vesselos.test")
	vessel := createTestVessel(t, "MV Baltica")

	for i := 0; i < 3; i++ {
		request := domain.MaintenanceRequest{
			VesselID:     vessel.ID,
			ReportedByID: user.ID,
			Title:        "Routine inspection",
			Priority:     domain.MaintenancePriorityLow,
			Status:       domain.MaintenanceStatusOpen,
		}
		if err := CreateMaintenanceRequest(&request); err != nil {
			t.Fatalf("create request %d: %v", i, err)
		}
	}

	page, err := GetMaintenanceRequestPage(1, 2)
	if err != nil {
		t.Fatalf("get page: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("expected 2 results on first page, got %d", len(page))
	}
	if page[0].VesselName != "MV Baltica" {
		t.Fatalf("expected vessel name preloaded, got %q", page[0].VesselName)
	}

	count, err := CountMaintenanceRequests()
	if err != nil {
		t.Fatalf("count requests: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 requests, got %d", count)
	}
}

func TestAssignMaintenanceRequest(t *testing.T) {
	setupTestDB(t)

	reporter := createTestUser(t, "deckhand@vesselos.test")
	assignee := createTestUser(t, "fitter@vesselos.test")
	vessel := createTestVessel(t, "MV Aurora")

	request := domain.MaintenanceRequest{
		VesselID:     vessel.ID,
		ReportedByID: reporter.ID,
		Title:        "Hydraulic leak on crane 2",
		Priority:     domain.MaintenancePriorityCritical,
		Status:       domain.MaintenanceStatusOpen,
	}
	if err := CreateMaintenanceRequest(&request); err != nil {
		t.Fatalf("create request: %v", err)
	}

	if err := AssignMaintenanceRequest(request.ID, assignee.ID); err != nil {
		t.Fatalf("assign request: %v", err)
	}

	updated, err := GetMaintenanceRequestFromId(request.ID)
	if err != nil {
		t.Fatalf("reload request: %v", err)
	}
	if updated.AssignedToID == nil || *updated.AssignedToID != assignee.ID {
		t.Fatalf("expected assignee %d, got %v", assignee.ID, updated.AssignedToID)
	}

	if err := AssignMaintenanceRequest(request.ID, 9999); err == nil {
		t.Fatal("expected error assigning to missing user")
	}
}
