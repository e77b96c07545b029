package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tasktrack-api/internal/model"
	"tasktrack-api/internal/task"
	"tasktrack-api/pkg/locale"
	"tasktrack-api/pkg/response"
)

// Create creates a task. Managers only.
// @Summary Create task
// @Tags Tasks
// @Accept json
// @Produce json
// @Param body body createTaskReq true "Task data"
// @Success 200 {object} taskResp
// @Security BearerAuth
// @Router /tasks [POST]
func (h Handler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := model.GetScopeFromContext(ctx)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var req createTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "internal.task.delivery.http.Create.ShouldBindJSON: %v", err)
		response.Error(c, err)
		return
	}

	out, err := h.uc.Create(ctx, sc, req.toInput())
	if err != nil {
		response.ErrorWithMap(c, err, errMapping)
		return
	}

	response.OK(c, newTaskResp(locale.GetLang(ctx), out.Task))
}

// Get returns a paginated task listing. Regular users only see their own.
// @Summary List tasks
// @Tags Tasks
// @Produce json
// @Param assigneeId query string false "Filter by assignee"
// @Param status query string false "Filter by status"
// @Param priority query string false "Filter by priority"
// @Param search query string false "Search in title or description"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} listTasksResp
// @Security BearerAuth
// @Router /tasks [GET]
func (h Handler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := model.GetScopeFromContext(ctx)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var q listTasksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.l.Warnf(ctx, "internal.task.delivery.http.Get.ShouldBindQuery: %v", err)
		response.Error(c, err)
		return
	}

	out, err := h.uc.Get(ctx, sc, task.GetInput{
		Filter: task.Filter{
			AssigneeID: q.AssigneeID,
			Status:     q.Status,
			Priority:   q.Priority,
			Search:     q.Search,
		},
		PaginateQuery: q.PaginateQuery,
	})
	if err != nil {
		response.ErrorWithMap(c, err, errMapping)
		return
	}

	response.OK(c, newListTasksResp(locale.GetLang(ctx), out))
}

// Detail returns one task.
// @Summary Get task
// @Tags Tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} taskResp
// @Security BearerAuth
// @Router /tasks/{id} [GET]
func (h Handler) Detail(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := model.GetScopeFromContext(ctx)
	if !ok {
		response.Unauthorized(c)
		return
	}

	out, err := h.uc.Detail(ctx, sc, c.Param("id"))
	if err != nil {
		response.ErrorWithMap(c, err, errMapping)
		return
	}

	response.OK(c, newTaskResp(locale.GetLang(ctx), out.Task))
}

// Update edits task fields. Managers only.
// @Summary Update task
// @Tags Tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param body body updateTaskReq true "Fields to update"
// @Success 200 {object} taskResp
// @Security BearerAuth
// @Router /tasks/{id} [PUT]
func (h Handler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := model.GetScopeFromContext(ctx)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var req updateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "internal.task.delivery.http.Update.ShouldBindJSON: %v", err)
		response.Error(c, err)
		return
	}

	out, err := h.uc.Update(ctx, sc, task.UpdateInput{
		ID:          c.Param("id"),
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Deadline:    req.Deadline,
		AssigneeID:  req.AssigneeID,
	})
	if err != nil {
		response.ErrorWithMap(c, err, errMapping)
		return
	}

	response.OK(c, newTaskResp(locale.GetLang(ctx), out.Task))
}

// UpdateStatus moves a task along the workflow.
// @Summary Update task status
// @Tags Tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param body body updateStatusReq true "New status"
// @Success 200 {object} taskResp
// @Security BearerAuth
// @Router /tasks/{id}/status [PATCH]
func (h Handler) UpdateStatus(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := model.GetScopeFromContext(ctx)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "internal.task.delivery.http.UpdateStatus.ShouldBindJSON: %v", err)
		response.Error(c, err)
		return
	}

	out, err := h.uc.UpdateStatus(ctx, sc, task.UpdateStatusInput{
		ID:     c.Param("id"),
		Status: req.Status,
	})
	if err != nil {
		response.ErrorWithMap(c, err, errMapping)
		return
	}

	response.OK(c, newTaskResp(locale.GetLang(ctx), out.Task))
}

// Delete removes a task. Managers only.
// @Summary Delete task
// @Tags Tasks
// @Param id path string true "Task ID"
// @Success 200 {object} response.Resp
// @Security BearerAuth
// @Router /tasks/{id} [DELETE]
func (h Handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := model.GetScopeFromContext(ctx)
	if !ok {
		response.Unauthorized(c)
		return
	}

	if err := h.uc.Delete(ctx, sc, c.Param("id")); err != nil {
		response.ErrorWithMap(c, err, errMapping)
		return
	}

	response.OK(c, nil)
}

// SubmitReport attaches a report to a task. Accepts a multipart upload
// with a "file" part, or a JSON body with an inline text report.
// @Summary Submit task report
// @Tags Tasks
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} taskResp
// @Security BearerAuth
// @Router /tasks/{id}/report [POST]
func (h Handler) SubmitReport(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := model.GetScopeFromContext(ctx)
	if !ok {
		response.Unauthorized(c)
		return
	}

	ip := task.SubmitReportInput{TaskID: c.Param("id")}

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			h.l.Warnf(ctx, "internal.task.delivery.http.SubmitReport.FormFile: %v", err)
			response.Error(c, err)
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			response.Error(c, err)
			return
		}
		defer file.Close()

		ip.FileName = fileHeader.Filename
		ip.Reader = file
		ip.Size = fileHeader.Size
		ip.Comment = c.PostForm("comment")
	} else {
		var req textReportReq
		if err := c.ShouldBindJSON(&req); err != nil {
			h.l.Warnf(ctx, "internal.task.delivery.http.SubmitReport.ShouldBindJSON: %v", err)
			response.Error(c, err)
			return
		}
		ip.Text = req.Text
		ip.Comment = req.Comment
	}

	out, err := h.uc.SubmitReport(ctx, sc, ip)
	if err != nil {
		response.ErrorWithMap(c, err, errMapping)
		return
	}

	response.OK(c, newTaskResp(locale.GetLang(ctx), out.Task))
}

// DownloadReport serves the report file or the inline text body.
// @Summary Download task report
// @Tags Tasks
// @Produce octet-stream
// @Param id path string true "Task ID"
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /tasks/{id}/report [GET]
func (h Handler) DownloadReport(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := model.GetScopeFromContext(ctx)
	if !ok {
		response.Unauthorized(c)
		return
	}

	dl, err := h.uc.DownloadReport(ctx, sc, c.Param("id"))
	if err != nil {
		response.ErrorWithMap(c, err, errMapping)
		return
	}

	disposition := fmt.Sprintf("attachment; filename=%q", dl.FileName)

	if dl.IsText {
		c.Header("Content-Disposition", disposition)
		c.Data(http.StatusOK, dl.ContentType, []byte(dl.Text))
		return
	}
	defer dl.Reader.Close()

	c.DataFromReader(http.StatusOK, dl.Size, dl.ContentType, dl.Reader,
		map[string]string{"Content-Disposition": disposition})
}
