package db

// Row types double as API response payloads; the JSON field names follow the
// snake_case column names the front end binds to.

type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Password  string `json:"-"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

type Profile struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	NameTH      *string `json:"name_th"`
	Role        *string `json:"role"`
	Location    *string `json:"location"`
	Experience  *string `json:"experience"`
	Company     *string `json:"company"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	AvatarURL   *string `json:"avatar_url"`
	GithubURL   *string `json:"github_url"`
	LinkedinURL *string `json:"linkedin_url"`
	ResumeURL   *string `json:"resume_url"`
	Bio         *string `json:"bio"`
	UpdatedAt   string  `json:"updated_at"`
}

type Experience struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	StartDate   *string  `json:"start_date"`
	EndDate     *string  `json:"end_date"`
	IsCurrent   bool     `json:"is_current"`
	Description *string  `json:"description"`
	Highlights  []string `json:"highlights"`
	TechStack   []string `json:"tech_stack"`
	SortOrder   int      `json:"sort_order"`
	CreatedAt   string   `json:"created_at"`
}

type Project struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	Category     *string `json:"category"`
	ThumbnailURL *string `json:"thumbnail_url"`
	DemoURL      *string `json:"demo_url"`
	GithubURL    *string `json:"github_url"`
	AdminNotes   *string `json:"admin_notes"`
	IsFeatured   bool    `json:"is_featured"`
	SortOrder    int     `json:"sort_order"`
	CreatedAt    string  `json:"created_at"`

	// Always non-nil in API payloads; an image-less project carries [].
	Images []Image `json:"images"`
}

// Image is a child image row for either projects or deliveries.
type Image struct {
	ID        int64  `json:"id"`
	ParentID  int64  `json:"-"`
	ImageURL  string `json:"image_url"`
	Caption   string `json:"caption"`
	SortOrder int    `json:"sort_order"`
	CreatedAt string `json:"created_at"`
}

type Skill struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Percent   int     `json:"percent"`
	Category  *string `json:"category"`
	SortOrder int     `json:"sort_order"`
}

type TechStackEntry struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Icon      *string `json:"icon"`
	SortOrder int     `json:"sort_order"`
}

type Certification struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Issuer    *string `json:"issuer"`
	Year      *string `json:"year"`
	CertURL   *string `json:"cert_url"`
	SortOrder int     `json:"sort_order"`
}

type Delivery struct {
	ID          int64   `json:"id"`
	ProjectName string  `json:"project_name"`
	ContractNo  *string `json:"contract_no"`
	Client      *string `json:"client"`
	Category    *string `json:"category"`
	Budget      float64 `json:"budget"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Year        *int    `json:"year"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	SortOrder   int     `json:"sort_order"`
	CreatedAt   string  `json:"created_at"`

	// Always non-nil in API payloads; an image-less delivery carries [].
	Images []Image `json:"images"`
}

type ActivityEntry struct {
	ID        int64  `json:"id"`
	Action    string `json:"action"`
	Details   string `json:"details"`
	UserID    *int64 `json:"user_id"`
	CreatedAt string `json:"created_at"`
}

// Update payloads: nil fields keep the stored value (COALESCE in SQL).

type ProfileUpdate struct {
	Name        *string
	NameTH      *string
	Role        *string
	Location    *string
	Experience  *string
	Company     *string
	Email       *string
	Phone       *string
	Bio         *string
	GithubURL   *string
	LinkedinURL *string
	ResumeURL   *string
	AvatarURL   *string
}

type ExperienceUpdate struct {
	Title       *string
	Company     *string
	StartDate   *string
	EndDate     *string
	IsCurrent   *bool
	Description *string
	Highlights  []string
	TechStack   []string
	SortOrder   *int
}

type ProjectUpdate struct {
	Name        *string
	Description *string
	Category    *string
	IsFeatured  *bool
	SortOrder   *int
	DemoURL     *string
	GithubURL   *string
	AdminNotes  *string
}

type SkillUpdate struct {
	Name      *string
	Percent   *int
	Category  *string
	SortOrder *int
}

type TechStackUpdate struct {
	Name      *string
	Icon      *string
	SortOrder *int
}

type CertificationUpdate struct {
	Name      *string
	Issuer    *string
	Year      *string
	CertURL   *string
	SortOrder *int
}

type DeliveryUpdate struct {
	ProjectName *string
	ContractNo  *string
	Client      *string
	Category    *string
	Budget      *float64
	StartDate   *string
	EndDate     *string
	Year        *int
	Description *string
	Status      *string
	SortOrder   *int
}
