package app

import (
	"net/http"

	"github.com/gorilla/mux"

	"lingocoach/internal/domain"
	"lingocoach/internal/usecase/catalog"
)

func (s *Server) catalogRoutes(r *mux.Router) {
	r.HandleFunc("/api/courses", s.createCourse).Methods(http.MethodPost)
	r.HandleFunc("/api/courses", s.listCourses).Methods(http.MethodGet)
	r.HandleFunc("/api/courses/{id}", s.getCourse).Methods(http.MethodGet)
	r.HandleFunc("/api/courses/{id}", s.deleteCourse).Methods(http.MethodDelete)
	r.HandleFunc("/api/courses/{id}/publish", s.publishCourse).Methods(http.MethodPost)
	r.HandleFunc("/api/courses/{id}/archive", s.archiveCourse).Methods(http.MethodPost)
	r.HandleFunc("/api/courses/{id}/lessons", s.addCourseLesson).Methods(http.MethodPost)
	r.HandleFunc("/api/courses/{id}/lessons/{lessonID}", s.removeCourseLesson).Methods(http.MethodDelete)
	r.HandleFunc("/api/courses/{id}/lessons/order", s.reorderCourseLessons).Methods(http.MethodPut)
	r.HandleFunc("/api/courses/{id}/objectives", s.addCourseObjective).Methods(http.MethodPost)
	r.HandleFunc("/api/courses/{id}/tags", s.tagCourse).Methods(http.MethodPut)

	r.HandleFunc("/api/programmes", s.createProgramme).Methods(http.MethodPost)
	r.HandleFunc("/api/programmes", s.listProgrammes).Methods(http.MethodGet)
	r.HandleFunc("/api/programmes/{id}", s.getProgramme).Methods(http.MethodGet)
	r.HandleFunc("/api/programmes/{id}", s.deleteProgramme).Methods(http.MethodDelete)
	r.HandleFunc("/api/programmes/{id}/publish", s.publishProgramme).Methods(http.MethodPost)
	r.HandleFunc("/api/programmes/{id}/archive", s.archiveProgramme).Methods(http.MethodPost)
	r.HandleFunc("/api/programmes/{id}/courses", s.addProgrammeCourse).Methods(http.MethodPost)
	r.HandleFunc("/api/programmes/{id}/courses/{courseID}", s.removeProgrammeCourse).Methods(http.MethodDelete)
	r.HandleFunc("/api/programmes/{id}/courses/order", s.reorderProgrammeCourses).Methods(http.MethodPut)
}

type createCatalogRequest struct {
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Level          domain.Level `json:"level"`
	TargetLanguage string       `json:"target_language"`
	NativeLanguage string       `json:"native_language"`
	AuthorID       string       `json:"author_id"`
}

func (r createCatalogRequest) args() catalog.CreateArgs {
	return catalog.CreateArgs{
		Title:          r.Title,
		Description:    r.Description,
		Level:          r.Level,
		TargetLanguage: r.TargetLanguage,
		NativeLanguage: r.NativeLanguage,
		AuthorID:       r.AuthorID,
	}
}

func (s *Server) createCourse(w http.ResponseWriter, r *http.Request) {
	var req createCatalogRequest
	if !decode(w, r, &req) {
		return
	}
	c, err := s.Catalog.CreateCourse(r.Context(), req.args())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) listCourses(w http.ResponseWriter, r *http.Request) {
	cs, err := s.Catalog.ListCourses(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

func (s *Server) getCourse(w http.ResponseWriter, r *http.Request) {
	c, err := s.Catalog.GetCourse(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) deleteCourse(w http.ResponseWriter, r *http.Request) {
	if err := s.Catalog.DeleteCourse(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) publishCourse(w http.ResponseWriter, r *http.Request) {
	c, err := s.Catalog.PublishCourse(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) archiveCourse(w http.ResponseWriter, r *http.Request) {
	c, err := s.Catalog.ArchiveCourse(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) addCourseLesson(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LessonID string `json:"lesson_id"`
	}
	if !decode(w, r, &req) {
		return
	}
	c, err := s.Catalog.AddLessonToCourse(r.Context(), mux.Vars(r)["id"], req.LessonID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) removeCourseLesson(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	c, err := s.Catalog.RemoveLessonFromCourse(r.Context(), vars["id"], vars["lessonID"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) reorderCourseLessons(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LessonIDs []string `json:"lesson_ids"`
	}
	if !decode(w, r, &req) {
		return
	}
	c, err := s.Catalog.ReorderCourseLessons(r.Context(), mux.Vars(r)["id"], req.LessonIDs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) addCourseObjective(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Objective string `json:"objective"`
	}
	if !decode(w, r, &req) {
		return
	}
	c, err := s.Catalog.AddCourseObjective(r.Context(), mux.Vars(r)["id"], req.Objective)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) tagCourse(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tags []string `json:"tags"`
	}
	if !decode(w, r, &req) {
		return
	}
	c, err := s.Catalog.TagCourse(r.Context(), mux.Vars(r)["id"], req.Tags)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) createProgramme(w http.ResponseWriter, r *http.Request) {
	var req createCatalogRequest
	if !decode(w, r, &req) {
		return
	}
	p, err := s.Catalog.CreateProgramme(r.Context(), req.args())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) listProgrammes(w http.ResponseWriter, r *http.Request) {
	ps, err := s.Catalog.ListProgrammes(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ps)
}

func (s *Server) getProgramme(w http.ResponseWriter, r *http.Request) {
	p, err := s.Catalog.GetProgramme(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) deleteProgramme(w http.ResponseWriter, r *http.Request) {
	if err := s.Catalog.DeleteProgramme(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) publishProgramme(w http.ResponseWriter, r *http.Request) {
	p, err := s.Catalog.PublishProgramme(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) archiveProgramme(w http.ResponseWriter, r *http.Request) {
	p, err := s.Catalog.ArchiveProgramme(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) addProgrammeCourse(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CourseID string `json:"course_id"`
	}
	if !decode(w, r, &req) {
		return
	}
	p, err := s.Catalog.AddCourseToProgramme(r.Context(), mux.Vars(r)["id"], req.CourseID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) removeProgrammeCourse(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	p, err := s.Catalog.RemoveCourseFromProgramme(r.Context(), vars["id"], vars["courseID"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) reorderProgrammeCourses(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CourseIDs []string `json:"course_ids"`
	}
	if !decode(w, r, &req) {
		return
	}
	p, err := s.Catalog.ReorderProgrammeCourses(r.Context(), mux.Vars(r)["id"], req.CourseIDs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
