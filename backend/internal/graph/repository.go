// Package graph stores mention matrices in Neo4j as MENTIONED edges
// between candidate nodes, one edge set per analysis run.
package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"campaign-speeches/backend/internal/lexicon"
	"campaign-speeches/backend/internal/mention"
	apperrors "campaign-speeches/backend/pkg/errors"
	"campaign-speeches/backend/pkg/logger"
)

// Repository handles all Neo4j database operations
type Repository struct {
	driver neo4j.DriverWithContext
	logger *zap.Logger
}

// Run describes one stored analysis run
type Run struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Speakers  []string  `json:"speakers"`
	Edges     int       `json:"edges"`
}

// Connect opens a driver and verifies that the server answers
func Connect(ctx context.Context, uri, user, password string) (neo4j.DriverWithContext, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, apperrors.NewGraphConnectionFailed(uri, err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, apperrors.NewGraphConnectionFailed(uri, err)
	}
	return driver, nil
}

// NewRepository creates a new graph repository
func NewRepository(driver neo4j.DriverWithContext) *Repository {
	return &Repository{
		driver: driver,
		logger: logger.Named("graph"),
	}
}

// Close closes the Neo4j driver connection
func (r *Repository) Close() error {
	return r.driver.Close(context.Background())
}

// EnsureSchema creates the uniqueness constraints. It is idempotent.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	constraints := []string{
		`CREATE CONSTRAINT candidate_name IF NOT EXISTS FOR (c:Candidate) REQUIRE c.name IS UNIQUE`,
		`CREATE CONSTRAINT analysis_run_id IF NOT EXISTS FOR (r:AnalysisRun) REQUIRE r.id IS UNIQUE`,
	}
	for _, q := range constraints {
		if _, err := session.Run(ctx, q, nil); err != nil {
			return fmt.Errorf("failed to create constraint: %w", err)
		}
	}
	return nil
}

// SaveMentions stores a run node, one Candidate node per matrix speaker and
// one MENTIONED edge per non-zero cell. Saving the same run twice
// overwrites its counts.
func (r *Repository) SaveMentions(ctx context.Context, runID string, m *mention.Matrix, lex *lexicon.Lexicon) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	now := time.Now().UTC().Format(time.RFC3339)

	nodes := make([]map[string]interface{}, 0, len(m.Speakers))
	for _, name := range m.Speakers {
		nodes = append(nodes, map[string]interface{}{
			"name":  name,
			"party": lex.Party(name),
			"color": lex.Color(name),
		})
	}

	query := `
		MERGE (run:AnalysisRun {id: $runID})
		ON CREATE SET run.created_at = datetime($now)
		SET run.speakers = $speakers
		WITH run
		UNWIND $nodes AS node
		MERGE (c:Candidate {name: node.name})
		SET c.party = node.party, c.color = node.color
		MERGE (run)-[:INCLUDES]->(c)
	`
	_, err := session.Run(ctx, query, map[string]interface{}{
		"runID":    runID,
		"now":      now,
		"speakers": m.Speakers,
		"nodes":    nodes,
	})
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	var edges []map[string]interface{}
	for i, from := range m.Speakers {
		for j, to := range m.Speakers {
			if m.Counts[i][j] == 0 {
				continue
			}
			edges = append(edges, map[string]interface{}{
				"from":  from,
				"to":    to,
				"count": m.Counts[i][j],
			})
		}
	}

	query = `
		MATCH (:Candidate)-[old:MENTIONED {run_id: $runID}]->(:Candidate)
		DELETE old
	`
	if _, err := session.Run(ctx, query, map[string]interface{}{"runID": runID}); err != nil {
		return fmt.Errorf("failed to clear mentions: %w", err)
	}

	query = `
		UNWIND $edges AS edge
		MATCH (a:Candidate {name: edge.from})
		MATCH (b:Candidate {name: edge.to})
		CREATE (a)-[:MENTIONED {run_id: $runID, count: edge.count}]->(b)
	`
	if _, err := session.Run(ctx, query, map[string]interface{}{
		"runID": runID,
		"edges": edges,
	}); err != nil {
		return fmt.Errorf("failed to save mentions: %w", err)
	}

	r.logger.Info("Mentions saved",
		zap.String("run_id", runID),
		zap.Int("speakers", len(m.Speakers)),
		zap.Int("edges", len(edges)),
	)
	return nil
}

// FetchMentions rebuilds the matrix of a stored run
func (r *Repository) FetchMentions(ctx context.Context, runID string) (*mention.Matrix, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (run:AnalysisRun {id: $runID})
		RETURN run.speakers AS speakers
	`, map[string]interface{}{"runID": runID})
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("failed to fetch record: %w", err)
		}
		return nil, apperrors.NewGraphRunNotFound(runID)
	}
	m := mention.NewMatrix(recordNames(result.Record(), "speakers"))

	result, err = session.Run(ctx, `
		MATCH (a:Candidate)-[e:MENTIONED {run_id: $runID}]->(b:Candidate)
		RETURN a.name AS from, b.name AS to, e.count AS count
	`, map[string]interface{}{"runID": runID})
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	for result.Next(ctx) {
		record := result.Record()
		from, to := recordValue[string](record, "from"), recordValue[string](record, "to")
		if !m.Set(from, to, recordCount(record, "count")) {
			r.logger.Warn("Mention edge outside run speakers",
				zap.String("run_id", runID),
				zap.String("from", from),
				zap.String("to", to),
			)
		}
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to read mentions: %w", err)
	}
	return m, nil
}

// ListRuns returns the stored runs, newest first
func (r *Repository) ListRuns(ctx context.Context) ([]Run, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (run:AnalysisRun)
		OPTIONAL MATCH (:Candidate)-[e:MENTIONED {run_id: run.id}]->(:Candidate)
		RETURN run.id AS id, toString(run.created_at) AS created_at,
			run.speakers AS speakers, count(e) AS edges
		ORDER BY created_at DESC
	`, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	var runs []Run
	for result.Next(ctx) {
		record := result.Record()
		runs = append(runs, Run{
			ID:        recordValue[string](record, "id"),
			CreatedAt: recordTime(record, "created_at"),
			Speakers:  recordNames(record, "speakers"),
			Edges:     recordCount(record, "edges"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// DeleteRun removes a run and its edges. Candidate nodes are kept.
func (r *Repository) DeleteRun(ctx context.Context, runID string) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	if _, err := session.Run(ctx, `
		MATCH (:Candidate)-[e:MENTIONED {run_id: $runID}]->(:Candidate)
		DELETE e
	`, map[string]interface{}{"runID": runID}); err != nil {
		return fmt.Errorf("failed to delete mentions: %w", err)
	}

	result, err := session.Run(ctx, `
		MATCH (run:AnalysisRun {id: $runID})
		DETACH DELETE run
		RETURN count(*) AS deleted
	`, map[string]interface{}{"runID": runID})
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if !result.Next(ctx) || recordCount(result.Record(), "deleted") == 0 {
		return apperrors.NewGraphRunNotFound(runID)
	}

	r.logger.Info("Run deleted", zap.String("run_id", runID))
	return nil
}
