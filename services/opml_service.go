package services

import (
	"encoding/xml"
	"fmt"
	"log"
	"time"

	"dashpad/models"

	"github.com/gilliek/go-opml/opml"
)

// OPMLService converts the bookmark tree to and from OPML, for exchange
// with browsers and feed readers that speak outline files.
type OPMLService struct {
	bookmarks *BookmarksService
}

func NewOPMLService(bookmarks *BookmarksService) *OPMLService {
	return &OPMLService{bookmarks: bookmarks}
}

// ImportResult holds the results of an OPML import operation
type ImportResult struct {
	TotalLinks    int      `json:"total_links"`
	ImportedLinks int      `json:"imported_links"`
	SkippedLinks  int      `json:"skipped_links"`
	Errors        []string `json:"errors,omitempty"`
}

// ImportOPML merges an OPML outline into the bookmark tree. Container
// outlines become folders; outlines with a URL become bookmarks. Links
// whose URL already exists are skipped.
func (os *OPMLService) ImportOPML(opmlData []byte) (*ImportResult, error) {
	var doc opml.OPML
	if err := xml.Unmarshal(opmlData, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse OPML: %v", err)
	}

	result := &ImportResult{
		Errors: make([]string, 0),
	}

	existing := make(map[string]bool)
	for _, b := range os.bookmarks.Bookmarks() {
		existing[b.URL] = true
	}

	for _, outline := range doc.Body.Outlines {
		os.processOutline(&outline, nil, existing, result)
	}

	log.Printf("OPML import completed: %d total, %d imported, %d skipped",
		result.TotalLinks, result.ImportedLinks, result.SkippedLinks)

	return result, nil
}

// processOutline recursively walks OPML outline elements.
func (os *OPMLService) processOutline(outline *opml.Outline, parentID *string, existing map[string]bool, result *ImportResult) {
	link := outline.HTMLURL
	if link == "" {
		link = outline.URL
	}
	if link == "" {
		link = outline.XMLURL
	}

	if link != "" {
		result.TotalLinks++

		if existing[link] {
			result.SkippedLinks++
			log.Printf("Skipping existing bookmark: %s", link)
			return
		}

		title := outline.Title
		if title == "" {
			title = outline.Text
		}
		if title == "" {
			title = link
		}

		os.bookmarks.AddBookmark(title, link, FaviconURL(link, 32), parentID)
		existing[link] = true
		result.ImportedLinks++
		return
	}

	if outline.Text != "" || outline.Title != "" {
		folderName := outline.Title
		if folderName == "" {
			folderName = outline.Text
		}

		folder := os.bookmarks.AddFolder(folderName, parentID)
		for i := range outline.Outlines {
			os.processOutline(&outline.Outlines[i], &folder.ID, existing, result)
		}
	}
}

// ExportOPML renders the whole bookmark tree as an OPML document.
func (os *OPMLService) ExportOPML() ([]byte, error) {
	folders := os.bookmarks.Folders()
	bookmarks := os.bookmarks.Bookmarks()

	doc := opml.OPML{
		Version: "2.0",
		Head: opml.Head{
			Title:        "Dashpad Bookmarks",
			DateCreated:  time.Now().Format(time.RFC1123Z),
			DateModified: time.Now().Format(time.RFC1123Z),
			OwnerName:    "Dashpad",
		},
		Body: opml.Body{
			Outlines: make([]opml.Outline, 0),
		},
	}

	byFolder := make(map[string][]models.Bookmark)
	var rootLinks []models.Bookmark
	folderIDs := make(map[string]bool)
	for _, f := range folders {
		folderIDs[f.ID] = true
	}
	for _, b := range bookmarks {
		// Dangling folder references read as root.
		if b.FolderID != nil && folderIDs[*b.FolderID] {
			byFolder[*b.FolderID] = append(byFolder[*b.FolderID], b)
		} else {
			rootLinks = append(rootLinks, b)
		}
	}

	for _, folder := range os.bookmarks.GetSubfolders(nil) {
		doc.Body.Outlines = append(doc.Body.Outlines, os.folderOutline(folder, byFolder))
	}

	for _, b := range rootLinks {
		doc.Body.Outlines = append(doc.Body.Outlines, linkOutline(b))
	}

	xmlData, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal OPML: %v", err)
	}

	return []byte(xml.Header + string(xmlData)), nil
}

// folderOutline recursively renders a folder and its contents.
func (os *OPMLService) folderOutline(folder models.BookmarkFolder, byFolder map[string][]models.Bookmark) opml.Outline {
	outline := opml.Outline{
		Title:    folder.Name,
		Text:     folder.Name,
		Outlines: make([]opml.Outline, 0),
	}

	for _, b := range byFolder[folder.ID] {
		outline.Outlines = append(outline.Outlines, linkOutline(b))
	}

	for _, child := range os.bookmarks.GetSubfolders(&folder.ID) {
		outline.Outlines = append(outline.Outlines, os.folderOutline(child, byFolder))
	}

	return outline
}

func linkOutline(b models.Bookmark) opml.Outline {
	return opml.Outline{
		Type:    "link",
		Title:   b.Title,
		Text:    b.Title,
		URL:     b.URL,
		HTMLURL: b.URL,
	}
}
