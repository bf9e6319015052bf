package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "task-market.com/task-market/internal/data_models"
	"task-market.com/task-market/internal/services"
)

func skillInput(req *dto.SkillRequest) services.SkillInput {
	return services.SkillInput{
		Category:   req.Category,
		Experience: req.Experience,
		WorkType:   req.WorkType,
		HourlyRate: req.HourlyRate,
	}
}

func (h *Handler) CreateSkill(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	var req dto.SkillRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	skill, err := h.skillService.CreateSkill(c.Request().Context(), actor, skillInput(&req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, skill)
}

func (h *Handler) UpdateSkill(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	var req dto.SkillRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	skill, err := h.skillService.UpdateSkill(c.Request().Context(), c.Param("id"), actor, skillInput(&req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, skill)
}

func (h *Handler) GetSkill(c echo.Context) error {
	skill, err := h.skillService.GetSkill(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, skill)
}

func (h *Handler) ListProviderSkills(c echo.Context) error {
	skills, err := h.skillService.ListSkillsForProvider(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":  len(skills),
		"skills": skills,
	})
}
