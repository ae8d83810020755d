package docsystem

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sync"

	"heritageguard/internal/config"
	"heritageguard/internal/domain"
	models "heritageguard/internal/domain/models/docsystem"
	remote "heritageguard/internal/domain/remote/docsystem"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DocumentCounter reports how many documents live directly in a folder.
// Implemented by the document catalog.
type DocumentCounter interface {
	CountInFolder(folderID string) int
}

// FolderTreeService holds the in-memory folder hierarchy for one site.
// After any mutation the tree is fully re-fetched rather than patched
// locally, so the cache can never diverge from the server.
type FolderTreeService struct {
	gateway remote.FolderGateway
	docs    DocumentCounter
	logger  *slog.Logger

	mu     sync.RWMutex
	siteID string
	roots  []*models.FolderNode
	byID   map[string]*models.FolderNode
}

// NewFolderTreeService creates a folder tree service.
func NewFolderTreeService(gateway remote.FolderGateway, docs DocumentCounter, logger *slog.Logger) *FolderTreeService {
	return &FolderTreeService{
		gateway: gateway,
		docs:    docs,
		logger:  logger,
		byID:    make(map[string]*models.FolderNode),
	}
}

// Load fetches the flat folder list for a site and rebuilds the
// hierarchy. Replaces any previously loaded site.
func (s *FolderTreeService) Load(ctx context.Context, siteID string) error {
	folders, err := s.gateway.Tree(ctx, siteID)
	if err != nil {
		return err
	}

	// Two-pass build: create every node, then connect children to
	// parents. Children end up being exactly the folders whose
	// ParentID equals the parent's ID.
	byID := make(map[string]*models.FolderNode, len(folders))
	for _, folder := range folders {
		byID[folder.ID] = &models.FolderNode{
			ID:       folder.ID,
			Name:     folder.Name,
			ParentID: folder.ParentID,
			Children: []*models.FolderNode{},
		}
	}

	var roots []*models.FolderNode
	for _, folder := range folders {
		node := byID[folder.ID]
		if folder.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, exists := byID[*folder.ParentID]; exists {
			parent.Children = append(parent.Children, node)
		} else {
			// Orphaned parent reference; surface at root rather than
			// dropping the subtree.
			roots = append(roots, node)
		}
	}

	s.mu.Lock()
	s.siteID = siteID
	s.roots = roots
	s.byID = byID
	s.mu.Unlock()

	s.logger.Info("folder tree loaded",
		"site_id", siteID,
		"folder_count", len(folders),
	)
	return nil
}

// Roots returns the top-level folders of the loaded site.
func (s *FolderTreeService) Roots() []*models.FolderNode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roots
}

// FindNode looks up a folder by id via depth-first search. Returns nil
// when the id is absent; never an error.
func (s *FolderTreeService) FindNode(id string) *models.FolderNode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byID[id]
}

// BreadcrumbFor returns the root→target path for a folder. Index 0 is
// the top-level ancestor and the last entry is the target itself. The
// empty folder id (root/unfiled view) yields an empty path.
func (s *FolderTreeService) BreadcrumbFor(folderID string) []models.Breadcrumb {
	if folderID == "" {
		return []models.Breadcrumb{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	// Walk parent links target→root, then reverse.
	var reversed []models.Breadcrumb
	for node := s.byID[folderID]; node != nil; {
		reversed = append(reversed, models.Breadcrumb{ID: node.ID, Name: node.Name})
		if node.ParentID == nil {
			break
		}
		node = s.byID[*node.ParentID]
	}

	path := make([]models.Breadcrumb, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		path = append(path, reversed[i])
	}
	return path
}

// Create makes a new folder under parentID (nil = root) and reloads
// the tree.
func (s *FolderTreeService) Create(ctx context.Context, name string, parentID *string) (*models.Folder, error) {
	if err := validateFolderName(name); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	s.mu.RLock()
	siteID := s.siteID
	s.mu.RUnlock()

	folder, err := s.gateway.Create(ctx, &remote.CreateFolderRequest{
		SiteID:   siteID,
		Name:     name,
		ParentID: parentID,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder created", "id", folder.ID, "name", folder.Name, "site_id", siteID)
	return folder, s.Load(ctx, siteID)
}

// Rename changes a folder's name and reloads the tree.
func (s *FolderTreeService) Rename(ctx context.Context, folderID, name string) error {
	if err := validateFolderName(name); err != nil {
		return &domain.ValidationError{Message: err.Error()}
	}
	if _, err := s.gateway.Update(ctx, folderID, &remote.UpdateFolderRequest{Name: name}); err != nil {
		return err
	}

	s.mu.RLock()
	siteID := s.siteID
	s.mu.RUnlock()
	return s.Load(ctx, siteID)
}

// Move re-parents a folder. Rejects with ErrCyclicMove when the new
// parent is the folder itself or one of its descendants; the check
// runs client-side before the server is called because a successful
// cyclic move would corrupt the tree invariant.
func (s *FolderTreeService) Move(ctx context.Context, folderID string, newParentID *string) error {
	s.mu.RLock()
	if s.byID[folderID] == nil {
		s.mu.RUnlock()
		return &domain.NotFoundError{Message: fmt.Sprintf("folder %s no longer exists", folderID)}
	}
	if newParentID != nil && s.wouldCycle(folderID, *newParentID) {
		s.mu.RUnlock()
		return domain.ErrCyclicMove
	}
	siteID := s.siteID
	s.mu.RUnlock()

	if err := s.gateway.Move(ctx, folderID, newParentID); err != nil {
		return err
	}

	s.logger.Info("folder moved", "id", folderID, "site_id", siteID)
	return s.Load(ctx, siteID)
}

// Delete removes a folder. A non-recursive delete of a folder that
// still has children or documents fails with ErrFolderNotEmpty instead
// of silently cascading.
func (s *FolderTreeService) Delete(ctx context.Context, folderID string, recursive bool) error {
	s.mu.RLock()
	node := s.byID[folderID]
	siteID := s.siteID
	s.mu.RUnlock()

	if node == nil {
		return &domain.NotFoundError{Message: fmt.Sprintf("folder %s no longer exists", folderID)}
	}
	if !recursive {
		if len(node.Children) > 0 {
			return domain.ErrFolderNotEmpty
		}
		if s.docs != nil && s.docs.CountInFolder(folderID) > 0 {
			return domain.ErrFolderNotEmpty
		}
	}

	if err := s.gateway.Delete(ctx, folderID, recursive); err != nil {
		return err
	}

	s.logger.Info("folder deleted", "id", folderID, "recursive", recursive, "site_id", siteID)
	return s.Load(ctx, siteID)
}

// wouldCycle reports whether newParentID is folderID itself or a
// descendant of folderID. Caller holds at least a read lock.
func (s *FolderTreeService) wouldCycle(folderID, newParentID string) bool {
	if folderID == newParentID {
		return true
	}
	// Walk up from the prospective parent; hitting folderID on the way
	// to the root means the parent sits inside the moved subtree.
	for node := s.byID[newParentID]; node != nil && node.ParentID != nil; {
		if *node.ParentID == folderID {
			return true
		}
		node = s.byID[*node.ParentID]
	}
	return false
}

var folderNamePattern = regexp.MustCompile(`^[^/]+$`)

func validateFolderName(name string) error {
	return validation.Validate(name,
		validation.Required.Error("folder name is required"),
		validation.Length(1, config.MaxFolderNameLength),
		validation.Match(folderNamePattern).Error("folder name cannot contain slashes"),
	)
}
