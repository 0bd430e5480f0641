package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"newsact/internal/model"
)

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

const postColumns = `id, title, excerpt, content, author, date, category, image_url, read_time,
	views, is_breaking, is_editors_choice, is_top_news, is_trending, admin_id, created_at, updated_at`

func scanPost(row pgx.Row) (model.Post, error) {
	var p model.Post
	err := row.Scan(&p.ID, &p.Title, &p.Excerpt, &p.Content, &p.Author, &p.Date, &p.Category,
		&p.ImageURL, &p.ReadTime, &p.Views, &p.IsBreaking, &p.IsEditorsChoice, &p.IsTopNews,
		&p.IsTrending, &p.AdminID, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (model.Post, error) {
	p, err := scanPost(r.pool.QueryRow(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Post{}, model.ErrPostNotFound
	}
	if err != nil {
		return model.Post{}, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// List applies the filter and returns the page plus the total match count.
func (r *PostRepository) List(ctx context.Context, filter model.PostFilter) ([]model.Post, int, error) {
	where, args := buildPostFilter(filter)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM posts`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	query := `SELECT ` + postColumns + ` FROM posts` + where + ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT $` + strconv.Itoa(len(args)+1)
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query += ` OFFSET $` + strconv.Itoa(len(args)+1)
		args = append(args, filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		p, scanErr := scanPost(rows)
		if scanErr != nil {
			return nil, 0, fmt.Errorf("scan post: %w", scanErr)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate posts: %w", err)
	}

	return posts, total, nil
}

func buildPostFilter(filter model.PostFilter) (string, []any) {
	clauses := []string{}
	args := []any{}

	add := func(clause string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if strings.TrimSpace(filter.Category) != "" {
		add(`category = $%d`, strings.TrimSpace(filter.Category))
	}
	if filter.IsBreaking != nil {
		add(`is_breaking = $%d`, *filter.IsBreaking)
	}
	if filter.IsEditorsChoice != nil {
		add(`is_editors_choice = $%d`, *filter.IsEditorsChoice)
	}
	if filter.IsTopNews != nil {
		add(`is_top_news = $%d`, *filter.IsTopNews)
	}
	if filter.IsTrending != nil {
		add(`is_trending = $%d`, *filter.IsTrending)
	}
	if strings.TrimSpace(filter.Search) != "" {
		args = append(args, strings.TrimSpace(filter.Search))
		n := len(args)
		clauses = append(clauses, fmt.Sprintf(
			`(title ILIKE '%%' || $%d || '%%' OR excerpt ILIKE '%%' || $%d || '%%')`, n, n))
	}

	if len(clauses) == 0 {
		return "", args
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *PostRepository) Create(ctx context.Context, p model.Post) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO posts (`+postColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		p.ID, p.Title, p.Excerpt, p.Content, p.Author, p.Date, p.Category, p.ImageURL, p.ReadTime,
		p.Views, p.IsBreaking, p.IsEditorsChoice, p.IsTopNews, p.IsTrending, p.AdminID,
		p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

func (r *PostRepository) Update(ctx context.Context, p model.Post) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE posts SET title = $2, excerpt = $3, content = $4, author = $5, date = $6,
		    category = $7, image_url = $8, read_time = $9, is_breaking = $10,
		    is_editors_choice = $11, is_top_news = $12, is_trending = $13, updated_at = $14
		 WHERE id = $1`,
		p.ID, p.Title, p.Excerpt, p.Content, p.Author, p.Date, p.Category, p.ImageURL,
		p.ReadTime, p.IsBreaking, p.IsEditorsChoice, p.IsTopNews, p.IsTrending, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) IncrementViews(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `UPDATE posts SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	return nil
}

func (r *PostRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

func (r *PostRepository) TotalViews(ctx context.Context) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(views), 0) FROM posts`).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum post views: %w", err)
	}
	return total, nil
}

func (r *PostRepository) CountByCategory(ctx context.Context) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT category, COUNT(*) FROM posts GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("count posts by category: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		counts[category] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category counts: %w", err)
	}

	return counts, nil
}
