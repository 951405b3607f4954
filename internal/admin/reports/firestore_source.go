package reports

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreConfig names the collections a FirestoreSource reads.
type FirestoreConfig struct {
	RegionsCollection     string
	SupervisorsCollection string
	ReportsCollection     string
	EmployeesCollection   string
	MetadataDocPath       string
	FetchLimit            int
	Logger                *zap.Logger
}

// FirestoreSource loads a Dataset from Firestore once at startup. It never writes back.
type FirestoreSource struct {
	client *firestore.Client
	cfg    FirestoreConfig
	logger *zap.Logger
}

type regionDocument struct {
	ID   string `firestore:"id"`
	Name string `firestore:"name"`
}

type supervisorDocument struct {
	ID                string   `firestore:"id"`
	Name              string   `firestore:"name"`
	Email             string   `firestore:"email"`
	Phone             string   `firestore:"phone"`
	Department        string   `firestore:"department"`
	Title             string   `firestore:"title"`
	Bio               string   `firestore:"bio"`
	YearsOfExperience int      `firestore:"yearsOfExperience"`
	ReportsManaged    []string `firestore:"reportsManaged"`
	ProfileImage      string   `firestore:"profileImage"`
}

type reportDocument struct {
	ID          string    `firestore:"id"`
	Name        string    `firestore:"name"`
	Region      string    `firestore:"region"`
	Supervisors []string  `firestore:"supervisors"`
	Mappings    []string  `firestore:"mappings"`
	Description string    `firestore:"description"`
	LastUpdated time.Time `firestore:"lastUpdated"`
}

type employeeDocument struct {
	ID         string `firestore:"id"`
	Name       string `firestore:"name"`
	Email      string `firestore:"email"`
	Position   string `firestore:"position"`
	Department string `firestore:"department"`
	Phone      string `firestore:"phone"`
}

// NewFirestoreSource constructs a Firestore-backed dataset source.
func NewFirestoreSource(client *firestore.Client, cfg FirestoreConfig) *FirestoreSource {
	if client == nil {
		panic("reports: firestore client is required")
	}
	if cfg.RegionsCollection == "" {
		cfg.RegionsCollection = "regions"
	}
	if cfg.SupervisorsCollection == "" {
		cfg.SupervisorsCollection = "supervisors"
	}
	if cfg.ReportsCollection == "" {
		cfg.ReportsCollection = "reports"
	}
	if cfg.EmployeesCollection == "" {
		cfg.EmployeesCollection = "employees"
	}
	if cfg.FetchLimit <= 0 {
		cfg.FetchLimit = 5000
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FirestoreSource{client: client, cfg: cfg, logger: logger}
}

// Load reads all four collections. Documents without an id field use the document id.
// Undecodable documents are skipped and logged.
func (s *FirestoreSource) Load(ctx context.Context) (Dataset, error) {
	if version, err := s.loadVersion(ctx); err != nil {
		return Dataset{}, err
	} else if version != "" {
		s.logger.Info("loading dataset from firestore", zap.String("version", version))
	}

	var ds Dataset
	var err error

	ds.Regions, err = fetchCollection(ctx, s, s.cfg.RegionsCollection, func(snap *firestore.DocumentSnapshot) (Region, error) {
		var doc regionDocument
		if err := snap.DataTo(&doc); err != nil {
			return Region{}, err
		}
		return Region{ID: firstNonBlank(doc.ID, snap.Ref.ID), Name: doc.Name}, nil
	})
	if err != nil {
		return Dataset{}, err
	}

	ds.Supervisors, err = fetchCollection(ctx, s, s.cfg.SupervisorsCollection, func(snap *firestore.DocumentSnapshot) (Supervisor, error) {
		var doc supervisorDocument
		if err := snap.DataTo(&doc); err != nil {
			return Supervisor{}, err
		}
		return Supervisor{
			ID:                firstNonBlank(doc.ID, snap.Ref.ID),
			Name:              doc.Name,
			Email:             doc.Email,
			Phone:             doc.Phone,
			Department:        doc.Department,
			Title:             doc.Title,
			Bio:               doc.Bio,
			YearsOfExperience: doc.YearsOfExperience,
			ReportsManaged:    doc.ReportsManaged,
			ProfileImage:      doc.ProfileImage,
		}, nil
	})
	if err != nil {
		return Dataset{}, err
	}

	ds.Reports, err = fetchCollection(ctx, s, s.cfg.ReportsCollection, func(snap *firestore.DocumentSnapshot) (Report, error) {
		var doc reportDocument
		if err := snap.DataTo(&doc); err != nil {
			return Report{}, err
		}
		return Report{
			ID:          firstNonBlank(doc.ID, snap.Ref.ID),
			Name:        doc.Name,
			Region:      doc.Region,
			Supervisors: doc.Supervisors,
			Mappings:    doc.Mappings,
			Description: doc.Description,
			LastUpdated: doc.LastUpdated,
		}, nil
	})
	if err != nil {
		return Dataset{}, err
	}

	ds.Employees, err = fetchCollection(ctx, s, s.cfg.EmployeesCollection, func(snap *firestore.DocumentSnapshot) (Employee, error) {
		var doc employeeDocument
		if err := snap.DataTo(&doc); err != nil {
			return Employee{}, err
		}
		return Employee{
			ID:         firstNonBlank(doc.ID, snap.Ref.ID),
			Name:       doc.Name,
			Email:      doc.Email,
			Position:   doc.Position,
			Department: doc.Department,
			Phone:      doc.Phone,
		}, nil
	})
	if err != nil {
		return Dataset{}, err
	}

	if err := ValidateDataset(ds); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

func fetchCollection[T any](ctx context.Context, s *FirestoreSource, collection string, decode func(*firestore.DocumentSnapshot) (T, error)) ([]T, error) {
	iter := s.client.Collection(collection).
		OrderBy(firestore.DocumentID, firestore.Asc).
		Limit(s.cfg.FetchLimit).
		Documents(ctx)
	defer iter.Stop()

	var out []T
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reports: load %s: %w", collection, err)
		}
		item, err := decode(snap)
		if err != nil {
			s.logger.Warn("skip undecodable document", zap.String("path", snap.Ref.Path), zap.Error(err))
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *FirestoreSource) loadVersion(ctx context.Context) (string, error) {
	path := strings.Trim(s.cfg.MetadataDocPath, "/")
	if path == "" {
		return "", nil
	}
	ref := s.client.Doc(path)
	if ref == nil {
		s.logger.Warn("invalid dataset metadata doc path", zap.String("path", path))
		return "", nil
	}

	snap, err := ref.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return "", nil
		}
		return "", fmt.Errorf("reports: fetch dataset metadata: %w", err)
	}

	var doc struct {
		Version string `firestore:"version"`
	}
	if err := snap.DataTo(&doc); err != nil {
		return "", fmt.Errorf("reports: parse dataset metadata: %w", err)
	}
	if doc.Version == "" {
		return snap.UpdateTime.UTC().Format(time.RFC3339), nil
	}
	return doc.Version, nil
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
