// internal/repository/campaign_store.go
package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/bgkien/hypergen-dashboard/internal/model"
)

type CampaignStoreInterface interface {
	// ListCampaigns returns the campaigns of one workspace, optionally
	// constrained by status and an inclusive created_at date range.
	ListCampaigns(workspaceID string, status model.Status, start, end *time.Time) ([]model.Campaign, error)
}

type CampaignStore struct {
	DB *sql.DB
}

func (s *CampaignStore) ListCampaigns(workspaceID string, status model.Status, start, end *time.Time) ([]model.Campaign, error) {
	query := `
        SELECT id, name, status,
               lead_count, completed_lead_count, lead_contacted_count,
               sent_count, replied_count, positive_reply_count,
               bounced_count, unsubscribed_count,
               created_at, updated_at, last_activity_date
        FROM campaigns WHERE workspace_id=$1`
	args := []interface{}{workspaceID}
	argPos := 2

	if status != "" && status != model.StatusAll {
		query += fmt.Sprintf(" AND status=$%d", argPos)
		args = append(args, string(status))
		argPos++
	}
	if start != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", argPos)
		args = append(args, *start)
		argPos++
	}
	if end != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", argPos)
		args = append(args, *end)
		argPos++
	}

	query += " ORDER BY created_at DESC"

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := []model.Campaign{}
	for rows.Next() {
		var (
			c         model.Campaign
			rawStatus string
			counts    [8]int64
			createdAt time.Time
			updatedAt sql.NullTime
			lastSeen  sql.NullTime
		)
		if err := rows.Scan(
			&c.ID, &c.Name, &rawStatus,
			&counts[0], &counts[1], &counts[2], &counts[3],
			&counts[4], &counts[5], &counts[6], &counts[7],
			&createdAt, &updatedAt, &lastSeen,
		); err != nil {
			return nil, err
		}

		c.Status = model.NormalizeStatus(rawStatus)
		c.LeadCount = model.Count(counts[0])
		c.CompletedLeadCount = model.Count(counts[1])
		c.LeadContactedCount = model.Count(counts[2])
		c.SentCount = model.Count(counts[3])
		c.RepliedCount = model.Count(counts[4])
		c.PositiveReplyCount = model.Count(counts[5])
		c.BouncedCount = model.Count(counts[6])
		c.UnsubscribedCount = model.Count(counts[7])
		c.CreatedAt = model.FlexTime{Time: createdAt.UTC()}
		if updatedAt.Valid {
			c.UpdatedAt = &model.FlexTime{Time: updatedAt.Time.UTC()}
		}
		if lastSeen.Valid {
			c.LastActivityDate = &model.FlexTime{Time: lastSeen.Time.UTC()}
		}

		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}
