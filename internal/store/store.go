// Package store persists named estimation projects and their assemblies
// in a local SQLite database, so take-offs can grow over several
// sessions before reporting.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/Adhavansuren/EPiC-Grasshopper/internal/design"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

// Project is a stored estimation scope.
type Project struct {
	ID       string
	Name     string
	Comments string

	// DesignLife in years, nil falls back to the configured default.
	DesignLife *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store wraps the SQLite database holding projects.
type Store struct {
	db *sql.DB
}

// Open opens or creates the store at the given path. ":memory:" keeps
// everything in process memory.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	if path == ":memory:" {
		// Every pooled connection would otherwise get its own empty
		// in-memory database.
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// CreateProject registers a new empty project under a unique name.
func (s *Store) CreateProject(ctx context.Context, name string, comments string, designLife *float64) (*Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("project name is required")
	}

	project := &Project{
		ID:         uuid.NewString(),
		Name:       name,
		Comments:   comments,
		DesignLife: designLife,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO projects (id, name, comments, design_life, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		project.ID,
		project.Name,
		project.Comments,
		nullableFloat(project.DesignLife),
		project.CreatedAt.Format(time.RFC3339),
		project.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("project %q: %w", name, ErrDuplicate)
		}
		return nil, fmt.Errorf("inserting project: %w", err)
	}

	return project, nil
}

// Project returns the project with the given name.
func (s *Store) Project(ctx context.Context, name string) (*Project, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, comments, design_life, created_at, updated_at
		 FROM projects WHERE name = ?`, name)

	project, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading project: %w", err)
	}
	return project, nil
}

// ListProjects returns every project ordered by creation time.
func (s *Store) ListProjects(ctx context.Context) ([]*Project, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, comments, design_life, created_at, updated_at
		 FROM projects ORDER BY created_at, name`)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

// DeleteProject removes a project and its assemblies.
func (s *Store) DeleteProject(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("project %q: %w", name, ErrNotFound)
	}
	return nil
}

// AddAssembly appends an assembly definition to a project. Assembly
// names are unique within a project.
func (s *Store) AddAssembly(ctx context.Context, projectName string, assembly design.AssemblyDef) error {
	project, err := s.Project(ctx, projectName)
	if err != nil {
		return err
	}

	quantities, err := json.Marshal(assembly.Quantities)
	if err != nil {
		return fmt.Errorf("encoding quantities: %w", err)
	}
	materials, err := json.Marshal(assembly.Materials)
	if err != nil {
		return fmt.Errorf("encoding materials: %w", err)
	}

	var position int
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM assemblies WHERE project_id = ?`, project.ID).Scan(&position)
	if err != nil {
		return fmt.Errorf("counting assemblies: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO assemblies (id, project_id, name, category, comments, units,
			quantities, wastage, service_life, materials, position)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(),
		project.ID,
		assembly.Name,
		assembly.Category,
		assembly.Comments,
		assembly.Units,
		string(quantities),
		nullableFloat(assembly.Wastage),
		nullableFloat(assembly.ServiceLife),
		string(materials),
		position,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("assembly %q: %w", assembly.Name, ErrDuplicate)
		}
		return fmt.Errorf("inserting assembly: %w", err)
	}

	return s.touch(ctx, project.ID)
}

// RemoveAssembly deletes one assembly of a project by name.
func (s *Store) RemoveAssembly(ctx context.Context, projectName string, assemblyName string) error {
	project, err := s.Project(ctx, projectName)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM assemblies WHERE project_id = ? AND name = ?`, project.ID, assemblyName)
	if err != nil {
		return fmt.Errorf("deleting assembly: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting assembly: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("assembly %q: %w", assemblyName, ErrNotFound)
	}

	return s.touch(ctx, project.ID)
}

// Assemblies returns the assembly definitions of a project in insertion
// order.
func (s *Store) Assemblies(ctx context.Context, projectName string) ([]design.AssemblyDef, error) {
	project, err := s.Project(ctx, projectName)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT name, category, comments, units, quantities, wastage, service_life, materials
		 FROM assemblies WHERE project_id = ? ORDER BY position`, project.ID)
	if err != nil {
		return nil, fmt.Errorf("listing assemblies: %w", err)
	}
	defer rows.Close()

	var assemblies []design.AssemblyDef
	for rows.Next() {
		var (
			assembly    design.AssemblyDef
			quantities  string
			materials   string
			wastage     sql.NullFloat64
			serviceLife sql.NullFloat64
		)
		err := rows.Scan(&assembly.Name, &assembly.Category, &assembly.Comments, &assembly.Units,
			&quantities, &wastage, &serviceLife, &materials)
		if err != nil {
			return nil, fmt.Errorf("scanning assembly: %w", err)
		}
		if err := json.Unmarshal([]byte(quantities), &assembly.Quantities); err != nil {
			return nil, fmt.Errorf("decoding quantities: %w", err)
		}
		if err := json.Unmarshal([]byte(materials), &assembly.Materials); err != nil {
			return nil, fmt.Errorf("decoding materials: %w", err)
		}
		assembly.Wastage = floatPointer(wastage)
		assembly.ServiceLife = floatPointer(serviceLife)
		assemblies = append(assemblies, assembly)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assemblies: %w", err)
	}
	return assemblies, nil
}

// Document assembles the stored project into a design document. The
// document is normalized but not validated, a fresh project has no
// assemblies yet.
func (s *Store) Document(ctx context.Context, projectName string) (*design.Document, error) {
	project, err := s.Project(ctx, projectName)
	if err != nil {
		return nil, err
	}
	assemblies, err := s.Assemblies(ctx, projectName)
	if err != nil {
		return nil, err
	}

	document := &design.Document{
		Name:       project.Name,
		Comments:   project.Comments,
		DesignLife: project.DesignLife,
		Assemblies: assemblies,
	}
	document.Normalize()
	return document, nil
}

func (s *Store) touch(ctx context.Context, projectID string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE projects SET updated_at = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339), projectID)
	if err != nil {
		return fmt.Errorf("updating project timestamp: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(row scanner) (*Project, error) {
	var (
		project    Project
		designLife sql.NullFloat64
		createdAt  string
		updatedAt  string
	)
	err := row.Scan(&project.ID, &project.Name, &project.Comments, &designLife, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	project.DesignLife = floatPointer(designLife)
	if project.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if project.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &project, nil
}

func nullableFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func floatPointer(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
