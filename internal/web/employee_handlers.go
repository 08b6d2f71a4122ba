package web

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/UnknownOlympus/shiftbook/internal/models"
)

func (s *Server) top(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "index", "app.title", nil)
}

func (s *Server) employeeList(w http.ResponseWriter, r *http.Request) {
	done := s.observeQuery("list_employees")
	employees, err := s.repo.ListEmployees(r.Context())
	done()
	if err != nil {
		s.failure(w, r, fmt.Errorf("failed to list employees: %w", err))
		return
	}

	s.render(w, r, http.StatusOK, "employee", "page.employees", employees)
}

func (s *Server) addEmployee(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "add_employee", "page.add_employee", nil)
}

func (s *Server) addEmployeeCommit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.failure(w, r, fmt.Errorf("%w: %w", errBadForm, err))
		return
	}

	done := s.observeQuery("create_employee")
	employee, err := s.repo.CreateEmployee(r.Context(), r.PostForm.Get("nickname"))
	done()
	if err != nil {
		s.failure(w, r, fmt.Errorf("failed to create employee: %w", err))
		return
	}

	s.metrics.EmployeesCreated.Inc()
	s.log.InfoContext(r.Context(), "Employee created", "employee_id", employee.ID)
	http.Redirect(w, r, "/employee", http.StatusFound)
}

// loadEmployee reads the employee named by the employee_id form field.
func (s *Server) loadEmployee(r *http.Request) (models.Employee, error) {
	if err := r.ParseForm(); err != nil {
		return models.Employee{}, fmt.Errorf("%w: %w", errBadForm, err)
	}
	employeeID := strings.TrimSpace(r.PostForm.Get("employee_id"))
	if employeeID == "" {
		return models.Employee{}, fmt.Errorf("%w: employee_id is required", errBadForm)
	}

	done := s.observeQuery("get_employee")
	defer done()
	return s.repo.GetEmployee(r.Context(), employeeID)
}

func (s *Server) editEmployee(w http.ResponseWriter, r *http.Request) {
	employee, err := s.loadEmployee(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	s.render(w, r, http.StatusOK, "edit_employee", "page.edit_employee", employee)
}

func (s *Server) editEmployeeCommit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.failure(w, r, fmt.Errorf("%w: %w", errBadForm, err))
		return
	}
	employeeID := strings.TrimSpace(r.PostForm.Get("employee_id"))
	if employeeID == "" {
		s.failure(w, r, fmt.Errorf("%w: employee_id is required", errBadForm))
		return
	}

	done := s.observeQuery("rename_employee")
	_, err := s.repo.RenameEmployee(r.Context(), employeeID, r.PostForm.Get("nickname"))
	done()
	if err != nil {
		s.failure(w, r, fmt.Errorf("failed to rename employee %s: %w", employeeID, err))
		return
	}

	http.Redirect(w, r, "/employee", http.StatusFound)
}

func (s *Server) delEmployee(w http.ResponseWriter, r *http.Request) {
	employee, err := s.loadEmployee(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	s.render(w, r, http.StatusOK, "del_employee", "page.del_employee", employee)
}

func (s *Server) delEmployeeCommit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.failure(w, r, fmt.Errorf("%w: %w", errBadForm, err))
		return
	}
	employeeID := strings.TrimSpace(r.PostForm.Get("employee_id"))
	if employeeID == "" {
		s.failure(w, r, fmt.Errorf("%w: employee_id is required", errBadForm))
		return
	}

	done := s.observeQuery("delete_employee")
	err := s.repo.DeleteEmployee(r.Context(), employeeID)
	done()
	if err != nil {
		s.failure(w, r, fmt.Errorf("failed to delete employee %s: %w", employeeID, err))
		return
	}

	s.log.InfoContext(r.Context(), "Employee deleted", "employee_id", employeeID)
	http.Redirect(w, r, "/employee", http.StatusFound)
}
