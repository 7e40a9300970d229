// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"courseadmin/internal/api"
	"courseadmin/internal/cache"
	"courseadmin/internal/models"
	"courseadmin/internal/render"
)

const (
	coursesPath         = "/admin/courses"
	courseMaterialsPath = "/admin/course-materials"
)

// --- Courses ---

// CoursesList renders the courses table.
func (a *Admin) CoursesList(w http.ResponseWriter, r *http.Request) {
	pd := &render.PageData{Title: "Course", Section: "courses"}

	courses, err := a.api.Courses(r.Context())
	if err != nil {
		loadFailed(pd, err, "Error fetching courses.")
	}
	types, err := a.categoryTypes(r.Context())
	if err != nil {
		slog.Warn("load category types failed", "error", err)
	}

	typeNames := make(map[models.ID]string, len(types))
	for _, t := range types {
		typeNames[t.ID] = t.Name
	}

	pd.Data = map[string]any{"Items": courses, "TypeNames": typeNames}
	a.page(w, r, "courses", pd)
}

// CourseNew renders an empty course form.
func (a *Admin) CourseNew(w http.ResponseWriter, r *http.Request) {
	a.courseFormPage(w, r, &models.Course{}, true, "")
}

// CourseEdit renders the form for an existing course.
func (a *Admin) CourseEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	courses, err := a.api.Courses(r.Context())
	if err != nil {
		slog.Error("load courses failed", "error", err)
		a.fail(w, r, coursesPath, api.ErrorMessage(err, "Error fetching courses."))
		return
	}
	for i := range courses {
		if courses[i].ID.String() == id {
			a.courseFormPage(w, r, &courses[i], false, "")
			return
		}
	}
	a.fail(w, r, coursesPath, "Course not found.")
}

// CourseCreate submits a new course.
func (a *Admin) CourseCreate(w http.ResponseWriter, r *http.Request) {
	a.saveCourse(w, r, "")
}

// CourseUpdate submits changes to a course.
func (a *Admin) CourseUpdate(w http.ResponseWriter, r *http.Request) {
	a.saveCourse(w, r, chi.URLParam(r, "id"))
}

func (a *Admin) saveCourse(w http.ResponseWriter, r *http.Request, id string) {
	isNew := id == ""
	form := courseForm{
		Title:          formValue(r, "title"),
		Description:    formValue(r, "description"),
		Video:          formValue(r, "video"),
		CategoryTypeID: formValue(r, "categoryTypeId"),
	}
	item := &models.Course{
		ID:             models.ID(id),
		Title:          form.Title,
		Description:    form.Description,
		Video:          form.Video,
		CategoryTypeID: models.ID(form.CategoryTypeID),
	}

	if msg := check(form); msg != "" {
		a.courseFormPage(w, r, item, isNew, msg)
		return
	}

	in := api.CourseInput{
		Title:          form.Title,
		Description:    form.Description,
		Video:          form.Video,
		CategoryTypeID: form.CategoryTypeID,
	}

	var err error
	if isNew {
		_, err = a.api.CreateCourse(r.Context(), in)
	} else {
		_, err = a.api.UpdateCourse(r.Context(), id, in)
	}
	if err != nil {
		slog.Error("save course failed", "id", id, "error", err)
		a.courseFormPage(w, r, item, isNew, api.ErrorMessage(err, "Error submitting course."))
		return
	}

	action := models.ActivityUpdate
	if isNew {
		action = models.ActivityCreate
	}
	a.invalidate(r, cache.FamilyCourses)
	a.record(r, action, "course", id, form.Title)
	a.succeed(w, r, coursesPath, "Course "+actionWord(isNew)+" successfully.")
}

// CourseDelete removes a course.
func (a *Admin) CourseDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := a.api.DeleteCourse(r.Context(), id); err != nil {
		slog.Error("delete course failed", "id", id, "error", err)
		a.fail(w, r, coursesPath, api.ErrorMessage(err, "Error deleting course."))
		return
	}

	a.invalidate(r, cache.FamilyCourses)
	a.record(r, models.ActivityDelete, "course", id, "")
	a.succeed(w, r, coursesPath, "Course deleted successfully.")
}

func (a *Admin) courseFormPage(w http.ResponseWriter, r *http.Request, item *models.Course, isNew bool, errMsg string) {
	title := "Edit Course"
	if isNew {
		title = "New Course"
	}
	pd := &render.PageData{Title: title, Section: "courses"}

	types, err := a.categoryTypes(r.Context())
	if err != nil {
		loadFailed(pd, err, "Error fetching category types.")
	}

	pd.Data = map[string]any{"Item": item, "IsNew": isNew, "Types": types}
	if errMsg != "" {
		a.formError(w, r, "course_form", pd, errMsg)
		return
	}
	a.page(w, r, "course_form", pd)
}

// --- Course materials ---

// CourseMaterialsList renders the materials of the course picked in
// ?courseId=. Without a course only the picker is shown.
func (a *Admin) CourseMaterialsList(w http.ResponseWriter, r *http.Request) {
	pd := &render.PageData{Title: "Course Material", Section: "course_materials"}
	courseID := r.URL.Query().Get("courseId")

	courses, err := a.courses(r.Context())
	if err != nil {
		loadFailed(pd, err, "Error fetching courses.")
	}

	var materials []models.CourseMaterial
	if courseID != "" {
		materials, err = a.api.CourseMaterials(r.Context(), courseID)
		if err != nil {
			loadFailed(pd, err, "Failed to load course materials.")
		}
	}

	pd.Data = map[string]any{"Items": materials, "Courses": courses, "CourseID": courseID}
	a.page(w, r, "course_materials", pd)
}

// CourseMaterialNew renders an empty material form, preselecting the
// course from ?courseId=.
func (a *Admin) CourseMaterialNew(w http.ResponseWriter, r *http.Request) {
	item := &models.CourseMaterial{CourseID: models.ID(r.URL.Query().Get("courseId"))}
	a.courseMaterialFormPage(w, r, item, true, "")
}

// CourseMaterialEdit renders the form for an existing material. The
// course is needed to find it, so it travels in ?courseId=.
func (a *Admin) CourseMaterialEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	courseID := r.URL.Query().Get("courseId")
	back := materialsPath(courseID)

	materials, err := a.api.CourseMaterials(r.Context(), courseID)
	if err != nil {
		slog.Error("load course materials failed", "course", courseID, "error", err)
		a.fail(w, r, back, api.ErrorMessage(err, "Failed to load course materials."))
		return
	}
	for i := range materials {
		if materials[i].ID.String() == id {
			a.courseMaterialFormPage(w, r, &materials[i], false, "")
			return
		}
	}
	a.fail(w, r, back, "Course material not found.")
}

// CourseMaterialCreate uploads a new material with its media file.
func (a *Admin) CourseMaterialCreate(w http.ResponseWriter, r *http.Request) {
	a.saveCourseMaterial(w, r, "")
}

// CourseMaterialUpdate saves a material; the media file is optional.
func (a *Admin) CourseMaterialUpdate(w http.ResponseWriter, r *http.Request) {
	a.saveCourseMaterial(w, r, chi.URLParam(r, "id"))
}

func (a *Admin) saveCourseMaterial(w http.ResponseWriter, r *http.Request, id string) {
	isNew := id == ""
	if err := parseForm(r); err != nil {
		a.fail(w, r, courseMaterialsPath, formParseMessage(err))
		return
	}

	media, closeMedia := formFile(r, "media")
	defer closeMedia()

	form := courseMaterialForm{
		CourseID:    formValue(r, "courseId"),
		Title:       formValue(r, "title"),
		Description: formValue(r, "description"),
		Duration:    formValue(r, "duration"),
		Fees:        formValue(r, "fees"),
		IsNew:       isNew,
		HasMedia:    media != nil,
	}
	item := &models.CourseMaterial{
		ID:          models.ID(id),
		CourseID:    models.ID(form.CourseID),
		Title:       form.Title,
		Description: form.Description,
		Duration:    form.Duration,
		Fees:        form.Fees,
	}

	if msg := check(form); msg != "" {
		a.courseMaterialFormPage(w, r, item, isNew, msg)
		return
	}

	in := api.CourseMaterialInput{
		CourseID:    form.CourseID,
		Title:       form.Title,
		Description: form.Description,
		Duration:    form.Duration,
		Fees:        form.Fees,
		Media:       media,
	}

	var err error
	if isNew {
		_, err = a.api.CreateCourseMaterial(r.Context(), in)
	} else {
		_, err = a.api.UpdateCourseMaterial(r.Context(), id, in)
	}
	if err != nil {
		slog.Error("save course material failed", "id", id, "error", err)
		a.courseMaterialFormPage(w, r, item, isNew, api.ErrorMessage(err, "Failed to save course material."))
		return
	}

	action := models.ActivityUpdate
	if isNew {
		action = models.ActivityCreate
	}
	a.record(r, action, "course_material", id, form.Title)
	a.succeed(w, r, materialsPath(form.CourseID), "Material "+actionWord(isNew)+" successfully")
}

// CourseMaterialDelete removes a material and returns to its course.
func (a *Admin) CourseMaterialDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	back := materialsPath(r.URL.Query().Get("courseId"))

	if _, err := a.api.DeleteCourseMaterial(r.Context(), id); err != nil {
		slog.Error("delete course material failed", "id", id, "error", err)
		a.fail(w, r, back, api.ErrorMessage(err, "Delete failed"))
		return
	}

	a.record(r, models.ActivityDelete, "course_material", id, "")
	a.succeed(w, r, back, "Deleted successfully")
}

func (a *Admin) courseMaterialFormPage(w http.ResponseWriter, r *http.Request, item *models.CourseMaterial, isNew bool, errMsg string) {
	title := "Edit Course Material"
	if isNew {
		title = "New Course Material"
	}
	pd := &render.PageData{Title: title, Section: "course_materials"}

	courses, err := a.courses(r.Context())
	if err != nil {
		loadFailed(pd, err, "Error fetching courses.")
	}

	pd.Data = map[string]any{"Item": item, "IsNew": isNew, "Courses": courses}
	if errMsg != "" {
		a.formError(w, r, "course_material_form", pd, errMsg)
		return
	}
	a.page(w, r, "course_material_form", pd)
}

// materialsPath is the materials list, filtered to courseID when set.
func materialsPath(courseID string) string {
	if courseID == "" {
		return courseMaterialsPath
	}
	return courseMaterialsPath + "?courseId=" + url.QueryEscape(courseID)
}
