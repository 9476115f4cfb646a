// file: internal/database/sqlite_store.go
// version: 1.2.0
// guid: ad2578e9-25f4-4714-aac1-349863e4f783

package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/oklog/ulid/v2"
)

type rowScanner interface {
	Scan(dest ...interface{}) error
}

const listSelectColumns = `
	id, user_id, source, name, source_config, search_defaults,
	import_mode, use_book_language, enabled, last_fetched_at, fetch_error,
	total_books_imported, created_at, updated_at
`

const requestSelectColumns = `
	id, user_id, query_params, status, target_book_md5, fulfilled_book_md5,
	approver_id, rejection_reason, created_at, last_checked_at, fulfilled_at,
	approved_at, rejected_at
`

const bookSelectColumns = `
	md5, title, authors, format, language, size, year, isbn,
	cover_url, description, source_url, added_at
`

// SQLiteStore implements the Store interface using SQLite3
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and if needed bootstraps) a SQLite store at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) createTables() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS import_lists (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			source TEXT NOT NULL,
			name TEXT NOT NULL,
			source_config TEXT NOT NULL DEFAULT '{}',
			search_defaults TEXT NOT NULL DEFAULT '{}',
			import_mode TEXT NOT NULL DEFAULT 'all',
			use_book_language INTEGER NOT NULL DEFAULT 0,
			enabled INTEGER NOT NULL DEFAULT 1,
			last_fetched_at TIMESTAMP,
			fetch_error TEXT,
			total_books_imported INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_import_lists_user ON import_lists(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_import_lists_enabled ON import_lists(enabled)`,
		`CREATE TABLE IF NOT EXISTS imported_hashes (
			list_id TEXT NOT NULL,
			hash TEXT NOT NULL,
			book_md5 TEXT,
			added_at TIMESTAMP NOT NULL,
			PRIMARY KEY (list_id, hash)
		)`,
		`CREATE TABLE IF NOT EXISTS books (
			md5 TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			authors TEXT NOT NULL DEFAULT '[]',
			format TEXT,
			language TEXT,
			size INTEGER,
			year INTEGER,
			isbn TEXT,
			cover_url TEXT,
			description TEXT,
			source_url TEXT,
			added_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_books_title ON books(title)`,
		`CREATE TABLE IF NOT EXISTS download_requests (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			query_params TEXT NOT NULL,
			query_hash TEXT NOT NULL,
			status TEXT NOT NULL,
			target_book_md5 TEXT,
			fulfilled_book_md5 TEXT,
			approver_id TEXT,
			rejection_reason TEXT,
			created_at TIMESTAMP NOT NULL,
			last_checked_at TIMESTAMP,
			fulfilled_at TIMESTAMP,
			approved_at TIMESTAMP,
			rejected_at TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_requests_user_hash ON download_requests(user_id, query_hash)`,
		`CREATE INDEX IF NOT EXISTS idx_requests_status ON download_requests(status)`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Reset drops all rows from every table. Used by tests.
func (s *SQLiteStore) Reset() error {
	for _, table := range []string{"import_lists", "imported_hashes", "books", "download_requests", "settings"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to reset %s: %w", table, err)
		}
	}
	return nil
}

// --- scan helpers ---

func scanImportList(scanner rowScanner, list *ImportList) error {
	var sourceConfig, searchDefaults string
	if err := scanner.Scan(
		&list.ID, &list.UserID, &list.Source, &list.Name,
		&sourceConfig, &searchDefaults, &list.ImportMode,
		&list.UseBookLanguage, &list.Enabled, &list.LastFetchedAt,
		&list.FetchError, &list.TotalBooksImported,
		&list.CreatedAt, &list.UpdatedAt,
	); err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(sourceConfig), &list.SourceConfig); err != nil {
		return fmt.Errorf("invalid source_config for list %s: %w", list.ID, err)
	}
	if err := json.Unmarshal([]byte(searchDefaults), &list.SearchDefaults); err != nil {
		return fmt.Errorf("invalid search_defaults for list %s: %w", list.ID, err)
	}
	return nil
}

func scanDownloadRequest(scanner rowScanner, req *DownloadRequest) error {
	var queryParams string
	if err := scanner.Scan(
		&req.ID, &req.UserID, &queryParams, &req.Status,
		&req.TargetBookMd5, &req.FulfilledBookMd5, &req.ApproverID,
		&req.RejectionReason, &req.CreatedAt, &req.LastCheckedAt,
		&req.FulfilledAt, &req.ApprovedAt, &req.RejectedAt,
	); err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(queryParams), &req.Query); err != nil {
		return fmt.Errorf("invalid query_params for request %s: %w", req.ID, err)
	}
	return nil
}

func scanBook(scanner rowScanner, book *Book) error {
	var authors string
	if err := scanner.Scan(
		&book.Md5, &book.Title, &authors, &book.Format, &book.Language,
		&book.Size, &book.Year, &book.ISBN, &book.CoverURL,
		&book.Description, &book.SourceURL, &book.AddedAt,
	); err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(authors), &book.Authors); err != nil {
		return fmt.Errorf("invalid authors for book %s: %w", book.Md5, err)
	}
	return nil
}

// --- import lists ---

func (s *SQLiteStore) queryImportLists(where string, args ...interface{}) ([]ImportList, error) {
	query := "SELECT " + listSelectColumns + " FROM import_lists"
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY created_at, id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query import lists: %w", err)
	}
	defer rows.Close()

	lists := []ImportList{}
	for rows.Next() {
		var list ImportList
		if err := scanImportList(rows, &list); err != nil {
			return nil, err
		}
		lists = append(lists, list)
	}
	return lists, rows.Err()
}

func (s *SQLiteStore) GetAllImportLists() ([]ImportList, error) {
	return s.queryImportLists("")
}

func (s *SQLiteStore) GetEnabledImportLists() ([]ImportList, error) {
	return s.queryImportLists("enabled = 1")
}

func (s *SQLiteStore) GetImportListsByUserID(userID string) ([]ImportList, error) {
	return s.queryImportLists("user_id = ?", userID)
}

func (s *SQLiteStore) GetImportListByID(id string) (*ImportList, error) {
	row := s.db.QueryRow("SELECT "+listSelectColumns+" FROM import_lists WHERE id = ?", id)
	var list ImportList
	if err := scanImportList(row, &list); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get import list: %w", err)
	}
	return &list, nil
}

func (s *SQLiteStore) CreateImportList(list *ImportList) (*ImportList, error) {
	if list.ID == "" {
		list.ID = ulid.Make().String()
	}
	if list.ImportMode == "" {
		list.ImportMode = ImportModeAll
	}
	if list.SourceConfig == nil {
		list.SourceConfig = map[string]string{}
	}
	now := time.Now().UTC()
	list.CreatedAt = now
	list.UpdatedAt = now

	sourceConfig, err := json.Marshal(list.SourceConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal source_config: %w", err)
	}
	searchDefaults, err := json.Marshal(list.SearchDefaults)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search_defaults: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO import_lists (
			id, user_id, source, name, source_config, search_defaults,
			import_mode, use_book_language, enabled, total_books_imported,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?)`,
		list.ID, list.UserID, list.Source, list.Name,
		string(sourceConfig), string(searchDefaults), list.ImportMode,
		list.UseBookLanguage, list.Enabled, list.CreatedAt, list.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create import list: %w", err)
	}
	return list, nil
}

func (s *SQLiteStore) UpdateImportList(id string, list *ImportList) (*ImportList, error) {
	existing, err := s.GetImportListByID(id)
	if err != nil {
		return nil, err
	}

	sourceConfig, err := json.Marshal(list.SourceConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal source_config: %w", err)
	}
	searchDefaults, err := json.Marshal(list.SearchDefaults)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search_defaults: %w", err)
	}

	list.ID = id
	list.CreatedAt = existing.CreatedAt
	list.UpdatedAt = time.Now().UTC()
	list.TotalBooksImported = existing.TotalBooksImported
	list.LastFetchedAt = existing.LastFetchedAt
	list.FetchError = existing.FetchError

	_, err = s.db.Exec(`
		UPDATE import_lists SET
			user_id = ?, source = ?, name = ?, source_config = ?,
			search_defaults = ?, import_mode = ?, use_book_language = ?,
			enabled = ?, updated_at = ?
		WHERE id = ?`,
		list.UserID, list.Source, list.Name, string(sourceConfig),
		string(searchDefaults), list.ImportMode, list.UseBookLanguage,
		list.Enabled, list.UpdatedAt, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update import list: %w", err)
	}
	return list, nil
}

func (s *SQLiteStore) DeleteImportList(id string) error {
	result, err := s.db.Exec("DELETE FROM import_lists WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete import list: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	_, err = s.db.Exec("DELETE FROM imported_hashes WHERE list_id = ?", id)
	return err
}

func (s *SQLiteStore) RecordImportListFetch(id string, newBooks int, fetchErr *string) error {
	now := time.Now().UTC()
	result, err := s.db.Exec(`
		UPDATE import_lists SET
			last_fetched_at = ?,
			fetch_error = ?,
			total_books_imported = total_books_imported + ?,
			updated_at = ?
		WHERE id = ?`,
		now, fetchErr, newBooks, now, id,
	)
	if err != nil {
		return fmt.Errorf("failed to record list fetch: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) GetListStats() (*ListStats, error) {
	stats := &ListStats{}
	row := s.db.QueryRow(`
		SELECT COUNT(*),
			COALESCE(SUM(enabled), 0),
			COALESCE(SUM(CASE WHEN fetch_error IS NOT NULL THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(total_books_imported), 0)
		FROM import_lists`)
	if err := row.Scan(&stats.TotalLists, &stats.EnabledLists, &stats.ListsWithErrors,
		&stats.TotalBooksImported); err != nil {
		return nil, fmt.Errorf("failed to get list stats: %w", err)
	}
	// Aggregate MAX() loses the column's declared type, so read the newest
	// timestamp from the column directly.
	var last time.Time
	err := s.db.QueryRow(`
		SELECT last_fetched_at FROM import_lists
		WHERE last_fetched_at IS NOT NULL
		ORDER BY last_fetched_at DESC LIMIT 1`).Scan(&last)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get last fetch time: %w", err)
	}
	if err == nil {
		stats.LastFetchedAt = &last
	}
	return stats, nil
}

// --- imported hashes ---

func (s *SQLiteStore) HasImportedHash(listID, hash string) (bool, error) {
	var one int
	err := s.db.QueryRow(
		"SELECT 1 FROM imported_hashes WHERE list_id = ? AND hash = ?", listID, hash,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check imported hash: %w", err)
	}
	return true, nil
}

func (s *SQLiteStore) AddImportedHash(listID, hash, bookMd5 string) error {
	_, err := s.db.Exec(`
		INSERT OR IGNORE INTO imported_hashes (list_id, hash, book_md5, added_at)
		VALUES (?, ?, ?, ?)`,
		listID, hash, bookMd5, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to add imported hash: %w", err)
	}
	return nil
}

func (s *SQLiteStore) CountImportedHashes(listID string) (int, error) {
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM imported_hashes WHERE list_id = ?", listID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count imported hashes: %w", err)
	}
	return count, nil
}

// --- books ---

func (s *SQLiteStore) GetBookByMd5(md5 string) (*Book, error) {
	row := s.db.QueryRow("SELECT "+bookSelectColumns+" FROM books WHERE md5 = ?", md5)
	var book Book
	if err := scanBook(row, &book); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return &book, nil
}

func (s *SQLiteStore) UpsertBook(book *Book) error {
	if book.AddedAt.IsZero() {
		book.AddedAt = time.Now().UTC()
	}
	authors, err := json.Marshal(book.Authors)
	if err != nil {
		return fmt.Errorf("failed to marshal authors: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO books (
			md5, title, authors, format, language, size, year, isbn,
			cover_url, description, source_url, added_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(md5) DO UPDATE SET
			title = excluded.title,
			authors = excluded.authors,
			format = excluded.format,
			language = excluded.language,
			size = excluded.size,
			year = excluded.year,
			isbn = excluded.isbn,
			cover_url = excluded.cover_url,
			description = excluded.description,
			source_url = excluded.source_url`,
		book.Md5, book.Title, string(authors), book.Format, book.Language,
		book.Size, book.Year, book.ISBN, book.CoverURL, book.Description,
		book.SourceURL, book.AddedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert book: %w", err)
	}
	return nil
}

func (s *SQLiteStore) queryBooks(query string, args ...interface{}) ([]Book, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	books := []Book{}
	for rows.Next() {
		var book Book
		if err := scanBook(rows, &book); err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, rows.Err()
}

func (s *SQLiteStore) GetAllBooks(limit, offset int) ([]Book, error) {
	return s.queryBooks(
		"SELECT "+bookSelectColumns+" FROM books ORDER BY added_at DESC, md5 LIMIT ? OFFSET ?",
		limit, offset,
	)
}

func (s *SQLiteStore) GetBooksAddedSince(since time.Time) ([]Book, error) {
	return s.queryBooks(
		"SELECT "+bookSelectColumns+" FROM books WHERE added_at >= ? ORDER BY added_at, md5",
		since,
	)
}

func (s *SQLiteStore) SearchBooks(query string, limit int) ([]Book, error) {
	pattern := "%" + strings.TrimSpace(query) + "%"
	return s.queryBooks(
		"SELECT "+bookSelectColumns+` FROM books
		 WHERE title LIKE ? COLLATE NOCASE OR authors LIKE ? COLLATE NOCASE
		 ORDER BY added_at DESC, md5 LIMIT ?`,
		pattern, pattern, limit,
	)
}

func (s *SQLiteStore) GetBooksByISBN(isbn string) ([]Book, error) {
	return s.queryBooks(
		"SELECT "+bookSelectColumns+` FROM books
		 WHERE isbn = ? ORDER BY added_at DESC, md5`,
		strings.TrimSpace(isbn),
	)
}

func (s *SQLiteStore) CountBooks() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM books").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return count, nil
}

// --- download requests ---

func (s *SQLiteStore) CreateDownloadRequest(req *DownloadRequest) (*DownloadRequest, error) {
	if req.ID == "" {
		req.ID = ulid.Make().String()
	}
	if req.Status == "" {
		req.Status = StatusPendingApproval
	}
	req.CreatedAt = time.Now().UTC()

	queryParams, err := json.Marshal(req.Query)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query_params: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO download_requests (
			id, user_id, query_params, query_hash, status, target_book_md5,
			approver_id, approved_at, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		req.ID, req.UserID, string(queryParams), QueryHash(req.Query),
		req.Status, req.TargetBookMd5, req.ApproverID, req.ApprovedAt,
		req.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create download request: %w", err)
	}
	return req, nil
}

func (s *SQLiteStore) GetDownloadRequestByID(id string) (*DownloadRequest, error) {
	row := s.db.QueryRow("SELECT "+requestSelectColumns+" FROM download_requests WHERE id = ?", id)
	var req DownloadRequest
	if err := scanDownloadRequest(row, &req); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get download request: %w", err)
	}
	return &req, nil
}

func (s *SQLiteStore) queryDownloadRequests(query string, args ...interface{}) ([]DownloadRequest, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query download requests: %w", err)
	}
	defer rows.Close()

	requests := []DownloadRequest{}
	for rows.Next() {
		var req DownloadRequest
		if err := scanDownloadRequest(rows, &req); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func (s *SQLiteStore) GetDownloadRequestsByUserID(userID string) ([]DownloadRequest, error) {
	return s.queryDownloadRequests(
		"SELECT "+requestSelectColumns+" FROM download_requests WHERE user_id = ? ORDER BY created_at DESC, id",
		userID,
	)
}

func (s *SQLiteStore) GetDownloadRequestsByStatus(status string) ([]DownloadRequest, error) {
	return s.queryDownloadRequests(
		"SELECT "+requestSelectColumns+" FROM download_requests WHERE status = ? ORDER BY created_at, id",
		status,
	)
}

func (s *SQLiteStore) GetActiveRequestsOrdered() ([]DownloadRequest, error) {
	// Never-checked requests come first, then oldest-checked.
	return s.queryDownloadRequests(
		"SELECT " + requestSelectColumns + ` FROM download_requests
		 WHERE status = '` + StatusActive + `'
		 ORDER BY last_checked_at IS NOT NULL, last_checked_at, id`,
	)
}

func (s *SQLiteStore) UpdateDownloadRequest(id string, req *DownloadRequest) (*DownloadRequest, error) {
	existing, err := s.GetDownloadRequestByID(id)
	if err != nil {
		return nil, err
	}

	queryParams, err := json.Marshal(req.Query)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query_params: %w", err)
	}

	req.ID = id
	req.CreatedAt = existing.CreatedAt

	_, err = s.db.Exec(`
		UPDATE download_requests SET
			user_id = ?, query_params = ?, query_hash = ?, status = ?,
			target_book_md5 = ?, fulfilled_book_md5 = ?, approver_id = ?,
			rejection_reason = ?, last_checked_at = ?, fulfilled_at = ?,
			approved_at = ?, rejected_at = ?
		WHERE id = ?`,
		req.UserID, string(queryParams), QueryHash(req.Query), req.Status,
		req.TargetBookMd5, req.FulfilledBookMd5, req.ApproverID,
		req.RejectionReason, req.LastCheckedAt, req.FulfilledAt,
		req.ApprovedAt, req.RejectedAt, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update download request: %w", err)
	}
	return req, nil
}

func (s *SQLiteStore) FindDuplicateRequest(userID, queryHash string) (*DownloadRequest, error) {
	row := s.db.QueryRow(
		"SELECT "+requestSelectColumns+` FROM download_requests
		 WHERE user_id = ? AND query_hash = ? AND status IN (?, ?)
		 LIMIT 1`,
		userID, queryHash, StatusPendingApproval, StatusActive,
	)
	var req DownloadRequest
	if err := scanDownloadRequest(row, &req); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find duplicate request: %w", err)
	}
	return &req, nil
}

func (s *SQLiteStore) TouchRequestChecked(id string, at time.Time) error {
	result, err := s.db.Exec(
		"UPDATE download_requests SET last_checked_at = ? WHERE id = ?", at.UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to touch request: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) CountRequestsByStatus() (map[string]int, error) {
	rows, err := s.db.Query("SELECT status, COUNT(*) FROM download_requests GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("failed to count requests: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// --- settings ---

func (s *SQLiteStore) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) SetSetting(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	settings := []Setting{}
	for rows.Next() {
		var setting Setting
		if err := rows.Scan(&setting.Key, &setting.Value); err != nil {
			return nil, err
		}
		settings = append(settings, setting)
	}
	return settings, rows.Err()
}
