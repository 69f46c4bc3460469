package db

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestProjectImagesEmbeddedAndNeverNull(t *testing.T) {
	q := NewQueries(newTestDB(t))
	ctx := context.Background()

	bare, err := q.InsertProject(ctx, Project{Name: "bare"})
	if err != nil {
		t.Fatalf("InsertProject() error = %v", err)
	}
	pictured, err := q.InsertProject(ctx, Project{Name: "pictured", SortOrder: 1})
	if err != nil {
		t.Fatalf("InsertProject() error = %v", err)
	}
	if _, err := q.InsertProjectImage(ctx, pictured, "/uploads/project-images/a.png", "front", 0); err != nil {
		t.Fatalf("InsertProjectImage() error = %v", err)
	}
	if _, err := q.InsertProjectImage(ctx, pictured, "/uploads/project-images/b.png", "back", 1); err != nil {
		t.Fatalf("InsertProjectImage() error = %v", err)
	}

	projects, err := q.ListProjectsWithImages(ctx)
	if err != nil {
		t.Fatalf("ListProjectsWithImages() error = %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("projects = %d, want 2", len(projects))
	}
	for _, p := range projects {
		if p.Images == nil {
			t.Fatalf("project %q has nil image list", p.Name)
		}
		switch p.ID {
		case bare:
			if len(p.Images) != 0 {
				t.Fatalf("bare project has %d images", len(p.Images))
			}
		case pictured:
			if len(p.Images) != 2 {
				t.Fatalf("pictured project has %d images, want 2", len(p.Images))
			}
			if p.Images[0].Caption != "front" {
				t.Fatalf("image order wrong: %#v", p.Images)
			}
		}
		// The empty list must survive marshaling: clients bind the key.
		payload, err := json.Marshal(p)
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		if !strings.Contains(string(payload), `"images":[`) {
			t.Fatalf("project %q payload lacks images list: %s", p.Name, payload)
		}
	}

	single, err := q.GetProjectByID(ctx, bare)
	if err != nil {
		t.Fatalf("GetProjectByID() error = %v", err)
	}
	if single.Images == nil {
		t.Fatal("single-row read has nil image list")
	}
}

func TestDeleteProjectCascadesToImages(t *testing.T) {
	q := NewQueries(newTestDB(t))
	ctx := context.Background()

	id, err := q.InsertProject(ctx, Project{Name: "doomed"})
	if err != nil {
		t.Fatalf("InsertProject() error = %v", err)
	}
	imgID, err := q.InsertProjectImage(ctx, id, "/uploads/project-images/x.png", "", 0)
	if err != nil {
		t.Fatalf("InsertProjectImage() error = %v", err)
	}

	if err := q.DeleteProject(ctx, id); err != nil {
		t.Fatalf("DeleteProject() error = %v", err)
	}
	if _, err := q.GetProjectImageByID(ctx, imgID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("image survived project delete: %v", err)
	}
	// Deleting again still succeeds.
	if err := q.DeleteProject(ctx, id); err != nil {
		t.Fatalf("repeat DeleteProject() error = %v", err)
	}
}

func TestSetProjectThumbnail(t *testing.T) {
	q := NewQueries(newTestDB(t))
	ctx := context.Background()

	id, err := q.InsertProject(ctx, Project{Name: "p"})
	if err != nil {
		t.Fatalf("InsertProject() error = %v", err)
	}
	if err := q.SetProjectThumbnail(ctx, id, "/uploads/thumbnails/t.png"); err != nil {
		t.Fatalf("SetProjectThumbnail() error = %v", err)
	}

	p, err := q.GetProjectByID(ctx, id)
	if err != nil {
		t.Fatalf("GetProjectByID() error = %v", err)
	}
	if p.ThumbnailURL == nil || *p.ThumbnailURL != "/uploads/thumbnails/t.png" {
		t.Fatalf("thumbnail = %v", p.ThumbnailURL)
	}
}

func TestDeliveriesOrderedByYearWithImages(t *testing.T) {
	q := NewQueries(newTestDB(t))
	ctx := context.Background()

	older, err := q.InsertDelivery(ctx, Delivery{ProjectName: "older", Year: intPtr(2021), Budget: 100000, Status: "completed"})
	if err != nil {
		t.Fatalf("InsertDelivery() error = %v", err)
	}
	newer, err := q.InsertDelivery(ctx, Delivery{ProjectName: "newer", Year: intPtr(2024), Budget: 250000, Status: "completed"})
	if err != nil {
		t.Fatalf("InsertDelivery() error = %v", err)
	}
	if _, err := q.InsertDeliveryImage(ctx, newer, "/uploads/delivery-images/n.png", "site", 0); err != nil {
		t.Fatalf("InsertDeliveryImage() error = %v", err)
	}

	deliveries, err := q.ListDeliveriesWithImages(ctx)
	if err != nil {
		t.Fatalf("ListDeliveriesWithImages() error = %v", err)
	}
	if len(deliveries) != 2 {
		t.Fatalf("deliveries = %d, want 2", len(deliveries))
	}
	if deliveries[0].ID != newer || deliveries[1].ID != older {
		t.Fatalf("deliveries not ordered by year desc: %#v", deliveries)
	}
	if len(deliveries[0].Images) != 1 || deliveries[0].Images[0].Caption != "site" {
		t.Fatalf("delivery images wrong: %#v", deliveries[0].Images)
	}
	if deliveries[1].Images == nil || len(deliveries[1].Images) != 0 {
		t.Fatalf("imageless delivery should carry empty list: %#v", deliveries[1].Images)
	}
}

func TestCertificationURLAssignment(t *testing.T) {
	q := NewQueries(newTestDB(t))
	ctx := context.Background()

	id, err := q.InsertCertification(ctx, Certification{Name: "CKA", Issuer: strPtr("CNCF"), Year: strPtr("2023")})
	if err != nil {
		t.Fatalf("InsertCertification() error = %v", err)
	}

	updated, err := q.SetCertificationURL(ctx, id, "/uploads/certificates/cka.pdf")
	if err != nil {
		t.Fatalf("SetCertificationURL() error = %v", err)
	}
	if !updated {
		t.Fatal("SetCertificationURL() reported no row")
	}
	if updated, err := q.SetCertificationURL(ctx, 9999, "/x"); err != nil || updated {
		t.Fatalf("SetCertificationURL(missing) = (%v, %v), want (false, nil)", updated, err)
	}

	cert, err := q.GetCertificationByID(ctx, id)
	if err != nil {
		t.Fatalf("GetCertificationByID() error = %v", err)
	}
	if cert.CertURL == nil || *cert.CertURL != "/uploads/certificates/cka.pdf" {
		t.Fatalf("cert url = %v", cert.CertURL)
	}
}

func TestCounts(t *testing.T) {
	q := NewQueries(newTestDB(t))
	ctx := context.Background()

	pid, err := q.InsertProject(ctx, Project{Name: "p"})
	if err != nil {
		t.Fatalf("InsertProject() error = %v", err)
	}
	if _, err := q.InsertProjectImage(ctx, pid, "/u/a.png", "", 0); err != nil {
		t.Fatalf("InsertProjectImage() error = %v", err)
	}
	if _, err := q.InsertSkill(ctx, Skill{Name: "Go", Percent: 90}); err != nil {
		t.Fatalf("InsertSkill() error = %v", err)
	}

	if n, err := q.CountProjects(ctx); err != nil || n != 1 {
		t.Fatalf("CountProjects() = (%d, %v)", n, err)
	}
	if n, err := q.CountSkills(ctx); err != nil || n != 1 {
		t.Fatalf("CountSkills() = (%d, %v)", n, err)
	}
	if n, err := q.CountCertifications(ctx); err != nil || n != 0 {
		t.Fatalf("CountCertifications() = (%d, %v)", n, err)
	}
	if n, err := q.CountProjectImages(ctx); err != nil || n != 1 {
		t.Fatalf("CountProjectImages() = (%d, %v)", n, err)
	}
}
