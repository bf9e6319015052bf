package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"task-market.com/task-market/internal/constants"
	dto "task-market.com/task-market/internal/data_models"
	repository "task-market.com/task-market/internal/repositories"
	"task-market.com/task-market/internal/services"
)

func taskInput(req *dto.TaskRequest) services.TaskInput {
	return services.TaskInput{
		Name:                 req.Name,
		Description:          req.Description,
		Category:             req.Category,
		HourlyRate:           req.HourlyRate,
		Currency:             req.Currency,
		ExpectedWorkingHours: req.ExpectedWorkingHours,
		ExpectedStartDate:    req.ExpectedStartDate,
	}
}

func (h *Handler) CreateTask(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	var req dto.TaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), actor, taskInput(&req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) UpdateTask(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	var req dto.TaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), c.Param("id"), actor, taskInput(&req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) GetTask(c echo.Context) error {
	task, err := h.taskService.GetTask(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) ListTasks(c echo.Context) error {
	filter := repository.TaskFilter{
		OwnerID: c.QueryParam("owner_id"),
		Status:  constants.TaskStatus(c.QueryParam("status")),
	}

	tasks, err := h.taskService.ListTasks(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

func (h *Handler) CompleteTask(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.CompleteTask(c.Request().Context(), c.Param("id"), actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) ListProviderTasks(c echo.Context) error {
	tasks, err := h.taskService.ListTasksForProvider(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}
