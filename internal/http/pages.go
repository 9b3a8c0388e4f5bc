package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/filmclub/judgemental/internal/auth"
	"github.com/filmclub/judgemental/internal/domain"
	"github.com/filmclub/judgemental/internal/repository"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "home", "Home", nil)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.repo.Users.List(r.Context())
	if err != nil {
		s.logger.Printf("list users error: %v", err)
		s.renderError(w, r, http.StatusInternalServerError)
		return
	}
	s.render(w, r, http.StatusOK, "user_list", "Users", struct {
		Users []domain.User
	}{Users: users})
}

func (s *Server) handleUserInfo(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(strings.TrimSpace(r.URL.Query().Get("user_id")), 10, 64)
	if err != nil {
		s.renderError(w, r, http.StatusNotFound)
		return
	}

	user, err := s.repo.Users.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.renderError(w, r, http.StatusNotFound)
			return
		}
		s.logger.Printf("fetch user %d error: %v", userID, err)
		s.renderError(w, r, http.StatusInternalServerError)
		return
	}

	ratings, err := s.repo.Ratings.ListByUser(r.Context(), user.ID)
	if err != nil {
		s.logger.Printf("list ratings for user %d error: %v", user.ID, err)
		s.renderError(w, r, http.StatusInternalServerError)
		return
	}

	s.render(w, r, http.StatusOK, "user_detail", fmt.Sprintf("User %d", user.ID), struct {
		User    domain.User
		Ratings []domain.UserRating
	}{User: user, Ratings: ratings})
}

func (s *Server) handleListMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := s.repo.Movies.List(r.Context())
	if err != nil {
		s.logger.Printf("list movies error: %v", err)
		s.renderError(w, r, http.StatusInternalServerError)
		return
	}
	s.render(w, r, http.StatusOK, "movie_list", "Movies", struct {
		Movies []domain.Movie
	}{Movies: movies})
}

// movieDetailData feeds the movie detail template. OwnScore is nil for
// anonymous visitors and for users who have not rated the movie yet.
type movieDetailData struct {
	Movie     domain.Movie
	Ratings   []domain.Rating
	Aggregate domain.RatingAggregate
	OwnScore  *int
}

func (s *Server) handleMovieDetail(w http.ResponseWriter, r *http.Request) {
	movieID, err := movieIDParam(r)
	if err != nil {
		s.renderError(w, r, http.StatusNotFound)
		return
	}

	movie, err := s.repo.Movies.GetByID(r.Context(), movieID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.renderError(w, r, http.StatusNotFound)
			return
		}
		s.logger.Printf("fetch movie %d error: %v", movieID, err)
		s.renderError(w, r, http.StatusInternalServerError)
		return
	}

	ratings, err := s.repo.Ratings.ListByMovie(r.Context(), movie.ID)
	if err != nil {
		s.logger.Printf("list ratings for movie %d error: %v", movie.ID, err)
		s.renderError(w, r, http.StatusInternalServerError)
		return
	}

	agg, err := s.repo.Ratings.Aggregate(r.Context(), movie.ID)
	if err != nil {
		s.logger.Printf("aggregate ratings for movie %d error: %v", movie.ID, err)
		s.renderError(w, r, http.StatusInternalServerError)
		return
	}

	data := movieDetailData{Movie: movie, Ratings: ratings, Aggregate: agg}
	if user := auth.UserFromContext(r.Context()); user != nil {
		// The visitor's own score comes from the list already in hand, not
		// another query.
		for _, rating := range ratings {
			if rating.UserID == user.ID {
				score := rating.Score
				data.OwnScore = &score
				break
			}
		}
	}

	s.render(w, r, http.StatusOK, "movie_detail", movie.Title, data)
}

func (s *Server) handleSubmitRating(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if user == nil {
		s.setFlash(w, "Log in to rate movies.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	movieID, err := movieIDParam(r)
	if err != nil {
		s.renderError(w, r, http.StatusNotFound)
		return
	}

	movie, err := s.repo.Movies.GetByID(r.Context(), movieID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.renderError(w, r, http.StatusNotFound)
			return
		}
		s.logger.Printf("fetch movie %d for rating error: %v", movieID, err)
		s.renderError(w, r, http.StatusInternalServerError)
		return
	}

	score, err := parseScore(r.PostFormValue("score"))
	if err != nil {
		s.setFlash(w, "Scores go from 1 to 5.")
		http.Redirect(w, r, fmt.Sprintf("/movies/%d", movie.ID), http.StatusSeeOther)
		return
	}

	if _, _, err := s.repo.Ratings.Upsert(r.Context(), repository.RatingUpsertParams{
		UserID:  user.ID,
		MovieID: movie.ID,
		Score:   score,
	}); err != nil {
		s.logger.Printf("upsert rating error: %v", err)
		s.renderError(w, r, http.StatusInternalServerError)
		return
	}

	s.setFlash(w, fmt.Sprintf("Saved your score of %d for %s.", score, movie.Title))
	http.Redirect(w, r, fmt.Sprintf("/user_info?user_id=%d", user.ID), http.StatusSeeOther)
}

type registerForm struct {
	Email    string  `validate:"required,email"`
	Password string  `validate:"required,min=6,max=72"`
	Age      *int    `validate:"omitempty,gte=1,lte=130"`
	Zipcode  *string `validate:"omitempty,max=16"`
}

func (s *Server) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "register", "Register", nil)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, http.StatusBadRequest)
		return
	}

	form := registerForm{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
	if raw := strings.TrimSpace(r.PostFormValue("age")); raw != "" {
		age, err := strconv.Atoi(raw)
		if err != nil {
			s.renderPage(w, r, http.StatusUnprocessableEntity, "register", "Register", "Age must be a number.", nil)
			return
		}
		form.Age = &age
	}
	if raw := strings.TrimSpace(r.PostFormValue("zipcode")); raw != "" {
		form.Zipcode = &raw
	}

	if err := s.validate.Struct(form); err != nil {
		s.renderPage(w, r, http.StatusUnprocessableEntity, "register", "Register", "Enter a valid email and a password of at least 6 characters.", nil)
		return
	}

	hash, err := auth.HashPassword(form.Password, s.cfg.BcryptCost)
	if err != nil {
		s.logger.Printf("hash password error: %v", err)
		s.renderError(w, r, http.StatusInternalServerError)
		return
	}

	_, err = s.repo.Users.Create(r.Context(), repository.UserCreateParams{
		Email:        form.Email,
		PasswordHash: hash,
		Age:          form.Age,
		Zipcode:      form.Zipcode,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			s.renderPage(w, r, http.StatusConflict, "register", "Register", "A user with that email already exists!", nil)
			return
		}
		s.logger.Printf("create user error: %v", err)
		s.renderError(w, r, http.StatusInternalServerError)
		return
	}

	s.setFlash(w, "Account created. Log in and start judging.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type loginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "login", "Log in", nil)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, http.StatusBadRequest)
		return
	}

	form := loginForm{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
	if err := s.validate.Struct(form); err != nil {
		s.flashInvalidLogin(w, r)
		return
	}

	user, err := s.repo.Users.GetByEmail(r.Context(), form.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Same reply as a bad password so the response does not reveal
			// whether the email is registered.
			s.flashInvalidLogin(w, r)
			return
		}
		s.logger.Printf("fetch user for login error: %v", err)
		s.renderError(w, r, http.StatusInternalServerError)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, form.Password) {
		s.flashInvalidLogin(w, r)
		return
	}

	token, err := s.sessions.Issue(user.Email)
	if err != nil {
		s.logger.Printf("issue session token error: %v", err)
		s.renderError(w, r, http.StatusInternalServerError)
		return
	}
	s.sessions.SetCookie(w, token)

	s.setFlash(w, "You are logged in, prepare to be judged.")
	http.Redirect(w, r, fmt.Sprintf("/user_info?user_id=%d", user.ID), http.StatusSeeOther)
}

func (s *Server) flashInvalidLogin(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusUnauthorized, "login", "Log in", "That login is invalid.", nil)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.sessions.ClearCookie(w)
	s.setFlash(w, "Logged out.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func movieIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "movieID")
	if raw == "" {
		return 0, fmt.Errorf("missing movieID parameter")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid movieID parameter")
	}
	return id, nil
}

func parseScore(raw string) (int, error) {
	score, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("score must be an integer")
	}
	if score < 1 || score > 5 {
		return 0, fmt.Errorf("score must be between 1 and 5")
	}
	return score, nil
}
