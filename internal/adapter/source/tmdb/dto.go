package tmdb

// RawItem is a movie, series or person record as returned by list and by-id endpoints.
// Movies carry title/release_date, series carry name/first_air_date.
type RawItem struct {
	ID           int        `json:"id"`
	Title        string     `json:"title"`
	Name         string     `json:"name"`
	MediaType    string     `json:"media_type"`
	ReleaseDate  string     `json:"release_date"`
	FirstAirDate string     `json:"first_air_date"`
	PosterPath   string     `json:"poster_path"`
	BackdropPath string     `json:"backdrop_path"`
	Overview     string     `json:"overview"`
	VoteAverage  float64    `json:"vote_average"`
	GenreIDs     []int      `json:"genre_ids"`
	Genres       []GenreDTO `json:"genres"` // By-id endpoints only
}

// PagedResponse is the envelope of trending, discover and search endpoints
type PagedResponse struct {
	Page         int       `json:"page"`
	Results      []RawItem `json:"results"`
	TotalPages   int       `json:"total_pages"`
	TotalResults int       `json:"total_results"`
}

// GenreDTO is one genre entry
type GenreDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GenreListResponse is the response of /genre/{movie|tv}/list
type GenreListResponse struct {
	Genres []GenreDTO `json:"genres"`
}

// DetailResponse is the by-id response with credits appended
type DetailResponse struct {
	ID             int   `json:"id"`
	Runtime        int   `json:"runtime"`          // Movies
	EpisodeRunTime []int `json:"episode_run_time"` // Series
	Credits        struct {
		Cast []CastDTO `json:"cast"`
	} `json:"credits"`
}

// CastDTO is one cast credit, ordered by billing
type CastDTO struct {
	Name      string `json:"name"`
	Character string `json:"character"`
	Order     int    `json:"order"`
}

// AuthResponse is the response of /authentication
type AuthResponse struct {
	Success       bool   `json:"success"`
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

// ErrorResponse is the error body returned with non-2xx statuses
type ErrorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}
