// file: internal/database/mock_store.go
// version: 1.0.0
// guid: 7dbe6937-d2ae-4cde-8d47-77c1089db00e

package database

import "time"

// MockStore is a simple mock implementation for testing services
type MockStore struct {
	// Import list methods
	GetAllImportListsFunc      func() ([]ImportList, error)
	GetEnabledImportListsFunc  func() ([]ImportList, error)
	GetImportListByIDFunc      func(id string) (*ImportList, error)
	GetImportListsByUserIDFunc func(userID string) ([]ImportList, error)
	CreateImportListFunc       func(list *ImportList) (*ImportList, error)
	UpdateImportListFunc       func(id string, list *ImportList) (*ImportList, error)
	DeleteImportListFunc       func(id string) error
	RecordImportListFetchFunc  func(id string, newBooks int, fetchErr *string) error
	GetListStatsFunc           func() (*ListStats, error)

	// Imported hash methods
	HasImportedHashFunc     func(listID, hash string) (bool, error)
	AddImportedHashFunc     func(listID, hash, bookMd5 string) error
	CountImportedHashesFunc func(listID string) (int, error)

	// Book methods
	GetBookByMd5Func       func(md5 string) (*Book, error)
	UpsertBookFunc         func(book *Book) error
	GetAllBooksFunc        func(limit, offset int) ([]Book, error)
	GetBooksAddedSinceFunc func(since time.Time) ([]Book, error)
	SearchBooksFunc        func(query string, limit int) ([]Book, error)
	GetBooksByISBNFunc     func(isbn string) ([]Book, error)
	CountBooksFunc         func() (int, error)

	// Download request methods
	CreateDownloadRequestFunc       func(req *DownloadRequest) (*DownloadRequest, error)
	GetDownloadRequestByIDFunc      func(id string) (*DownloadRequest, error)
	GetDownloadRequestsByUserIDFunc func(userID string) ([]DownloadRequest, error)
	GetDownloadRequestsByStatusFunc func(status string) ([]DownloadRequest, error)
	GetActiveRequestsOrderedFunc    func() ([]DownloadRequest, error)
	UpdateDownloadRequestFunc       func(id string, req *DownloadRequest) (*DownloadRequest, error)
	FindDuplicateRequestFunc        func(userID, queryHash string) (*DownloadRequest, error)
	TouchRequestCheckedFunc         func(id string, at time.Time) error
	CountRequestsByStatusFunc       func() (map[string]int, error)

	// Setting methods
	GetSettingFunc     func(key string) (string, error)
	SetSettingFunc     func(key, value string) error
	GetAllSettingsFunc func() ([]Setting, error)
}

func (m *MockStore) Close() error { return nil }
func (m *MockStore) Reset() error { return nil }

func (m *MockStore) GetAllImportLists() ([]ImportList, error) {
	if m.GetAllImportListsFunc != nil {
		return m.GetAllImportListsFunc()
	}
	return []ImportList{}, nil
}

func (m *MockStore) GetEnabledImportLists() ([]ImportList, error) {
	if m.GetEnabledImportListsFunc != nil {
		return m.GetEnabledImportListsFunc()
	}
	return []ImportList{}, nil
}

func (m *MockStore) GetImportListByID(id string) (*ImportList, error) {
	if m.GetImportListByIDFunc != nil {
		return m.GetImportListByIDFunc(id)
	}
	return nil, ErrNotFound
}

func (m *MockStore) GetImportListsByUserID(userID string) ([]ImportList, error) {
	if m.GetImportListsByUserIDFunc != nil {
		return m.GetImportListsByUserIDFunc(userID)
	}
	return []ImportList{}, nil
}

func (m *MockStore) CreateImportList(list *ImportList) (*ImportList, error) {
	if m.CreateImportListFunc != nil {
		return m.CreateImportListFunc(list)
	}
	return list, nil
}

func (m *MockStore) UpdateImportList(id string, list *ImportList) (*ImportList, error) {
	if m.UpdateImportListFunc != nil {
		return m.UpdateImportListFunc(id, list)
	}
	return list, nil
}

func (m *MockStore) DeleteImportList(id string) error {
	if m.DeleteImportListFunc != nil {
		return m.DeleteImportListFunc(id)
	}
	return nil
}

func (m *MockStore) RecordImportListFetch(id string, newBooks int, fetchErr *string) error {
	if m.RecordImportListFetchFunc != nil {
		return m.RecordImportListFetchFunc(id, newBooks, fetchErr)
	}
	return nil
}

func (m *MockStore) GetListStats() (*ListStats, error) {
	if m.GetListStatsFunc != nil {
		return m.GetListStatsFunc()
	}
	return &ListStats{}, nil
}

func (m *MockStore) HasImportedHash(listID, hash string) (bool, error) {
	if m.HasImportedHashFunc != nil {
		return m.HasImportedHashFunc(listID, hash)
	}
	return false, nil
}

func (m *MockStore) AddImportedHash(listID, hash, bookMd5 string) error {
	if m.AddImportedHashFunc != nil {
		return m.AddImportedHashFunc(listID, hash, bookMd5)
	}
	return nil
}

func (m *MockStore) CountImportedHashes(listID string) (int, error) {
	if m.CountImportedHashesFunc != nil {
		return m.CountImportedHashesFunc(listID)
	}
	return 0, nil
}

func (m *MockStore) GetBookByMd5(md5 string) (*Book, error) {
	if m.GetBookByMd5Func != nil {
		return m.GetBookByMd5Func(md5)
	}
	return nil, ErrNotFound
}

func (m *MockStore) UpsertBook(book *Book) error {
	if m.UpsertBookFunc != nil {
		return m.UpsertBookFunc(book)
	}
	return nil
}

func (m *MockStore) GetAllBooks(limit, offset int) ([]Book, error) {
	if m.GetAllBooksFunc != nil {
		return m.GetAllBooksFunc(limit, offset)
	}
	return []Book{}, nil
}

func (m *MockStore) GetBooksAddedSince(since time.Time) ([]Book, error) {
	if m.GetBooksAddedSinceFunc != nil {
		return m.GetBooksAddedSinceFunc(since)
	}
	return []Book{}, nil
}

func (m *MockStore) SearchBooks(query string, limit int) ([]Book, error) {
	if m.SearchBooksFunc != nil {
		return m.SearchBooksFunc(query, limit)
	}
	return []Book{}, nil
}

func (m *MockStore) GetBooksByISBN(isbn string) ([]Book, error) {
	if m.GetBooksByISBNFunc != nil {
		return m.GetBooksByISBNFunc(isbn)
	}
	return []Book{}, nil
}

func (m *MockStore) CountBooks() (int, error) {
	if m.CountBooksFunc != nil {
		return m.CountBooksFunc()
	}
	return 0, nil
}

func (m *MockStore) CreateDownloadRequest(req *DownloadRequest) (*DownloadRequest, error) {
	if m.CreateDownloadRequestFunc != nil {
		return m.CreateDownloadRequestFunc(req)
	}
	return req, nil
}

func (m *MockStore) GetDownloadRequestByID(id string) (*DownloadRequest, error) {
	if m.GetDownloadRequestByIDFunc != nil {
		return m.GetDownloadRequestByIDFunc(id)
	}
	return nil, ErrNotFound
}

func (m *MockStore) GetDownloadRequestsByUserID(userID string) ([]DownloadRequest, error) {
	if m.GetDownloadRequestsByUserIDFunc != nil {
		return m.GetDownloadRequestsByUserIDFunc(userID)
	}
	return []DownloadRequest{}, nil
}

func (m *MockStore) GetDownloadRequestsByStatus(status string) ([]DownloadRequest, error) {
	if m.GetDownloadRequestsByStatusFunc != nil {
		return m.GetDownloadRequestsByStatusFunc(status)
	}
	return []DownloadRequest{}, nil
}

func (m *MockStore) GetActiveRequestsOrdered() ([]DownloadRequest, error) {
	if m.GetActiveRequestsOrderedFunc != nil {
		return m.GetActiveRequestsOrderedFunc()
	}
	return []DownloadRequest{}, nil
}

func (m *MockStore) UpdateDownloadRequest(id string, req *DownloadRequest) (*DownloadRequest, error) {
	if m.UpdateDownloadRequestFunc != nil {
		return m.UpdateDownloadRequestFunc(id, req)
	}
	return req, nil
}

func (m *MockStore) FindDuplicateRequest(userID, queryHash string) (*DownloadRequest, error) {
	if m.FindDuplicateRequestFunc != nil {
		return m.FindDuplicateRequestFunc(userID, queryHash)
	}
	return nil, nil
}

func (m *MockStore) TouchRequestChecked(id string, at time.Time) error {
	if m.TouchRequestCheckedFunc != nil {
		return m.TouchRequestCheckedFunc(id, at)
	}
	return nil
}

func (m *MockStore) CountRequestsByStatus() (map[string]int, error) {
	if m.CountRequestsByStatusFunc != nil {
		return m.CountRequestsByStatusFunc()
	}
	return map[string]int{}, nil
}

func (m *MockStore) GetSetting(key string) (string, error) {
	if m.GetSettingFunc != nil {
		return m.GetSettingFunc(key)
	}
	return "", nil
}

func (m *MockStore) SetSetting(key, value string) error {
	if m.SetSettingFunc != nil {
		return m.SetSettingFunc(key, value)
	}
	return nil
}

func (m *MockStore) GetAllSettings() ([]Setting, error) {
	if m.GetAllSettingsFunc != nil {
		return m.GetAllSettingsFunc()
	}
	return []Setting{}, nil
}
