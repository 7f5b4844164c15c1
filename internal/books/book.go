package books

import "strings"

// Fallback text used when a volume omits a field.
const (
	UnknownAuthor = "Unknown Author"
	NoDescription = "No description available."
	NoPlot        = "No plot description available."
	UntitledBook  = "Untitled"
)

// volumesResponse mirrors the wire format. Every nested field is optional.
type volumesResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []volume `json:"items"`
}

type volume struct {
	ID         string      `json:"id"`
	VolumeInfo *volumeInfo `json:"volumeInfo"`
}

type volumeInfo struct {
	Title       string      `json:"title"`
	Authors     []string    `json:"authors"`
	Description string      `json:"description"`
	ImageLinks  *imageLinks `json:"imageLinks"`
	InfoLink    string      `json:"infoLink"`
}

type imageLinks struct {
	SmallThumbnail string `json:"smallThumbnail"`
	Thumbnail      string `json:"thumbnail"`
}

func (v volume) book() Book {
	b := Book{ID: v.ID}
	info := v.VolumeInfo
	if info == nil {
		return b
	}
	b.Title = info.Title
	for _, a := range info.Authors {
		if a = strings.TrimSpace(a); a != "" {
			b.Authors = append(b.Authors, a)
		}
	}
	b.Description = strings.TrimSpace(info.Description)
	b.InfoLink = info.InfoLink
	if info.ImageLinks != nil {
		b.Thumbnail = info.ImageLinks.Thumbnail
		if b.Thumbnail == "" {
			b.Thumbnail = info.ImageLinks.SmallThumbnail
		}
	}
	return b
}

// Book is a volume as returned by the API. Empty fields mean the API
// did not send them; use the accessors to get display text.
type Book struct {
	ID          string
	Title       string
	Authors     []string
	Description string
	Thumbnail   string
	InfoLink    string
}

// DisplayTitle returns the title or UntitledBook.
func (b Book) DisplayTitle() string {
	if b.Title == "" {
		return UntitledBook
	}
	return b.Title
}

// AuthorLine joins the authors with ", " or returns UnknownAuthor.
func (b Book) AuthorLine() string {
	if len(b.Authors) == 0 {
		return UnknownAuthor
	}
	return strings.Join(b.Authors, ", ")
}

// Summary returns the description or NoDescription.
func (b Book) Summary() string {
	if b.Description == "" {
		return NoDescription
	}
	return b.Description
}

// Plot returns the description up to and including its first period.
// A description without a period is returned whole with a period appended.
func (b Book) Plot() string {
	if b.Description == "" {
		return NoPlot
	}
	head, _, _ := strings.Cut(b.Description, ".")
	return head + "."
}
