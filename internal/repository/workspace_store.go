// internal/repository/workspace_store.go
package repository

import (
	"database/sql"

	"github.com/bgkien/hypergen-dashboard/internal/model"
)

type WorkspaceStoreInterface interface {
	ListWorkspaces() ([]model.Workspace, error)
}

type WorkspaceStore struct {
	DB *sql.DB
}

func (s *WorkspaceStore) ListWorkspaces() ([]model.Workspace, error) {
	rows, err := s.DB.Query(`SELECT id, name FROM workspaces ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workspaces := []model.Workspace{}
	for rows.Next() {
		var w model.Workspace
		if err := rows.Scan(&w.ID, &w.Name); err != nil {
			return nil, err
		}
		workspaces = append(workspaces, w)
	}
	return workspaces, rows.Err()
}
