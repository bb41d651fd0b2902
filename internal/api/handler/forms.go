package handler

import (
	"strings"

	"github.com/librarydesk/console/internal/core/domain"
	"github.com/librarydesk/console/internal/core/ports"
)

type loginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type registerForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required,min=6"`
	Name     string `form:"name"     validate:"required"`
	Email    string `form:"email"    validate:"required,email"`
	Contact  string `form:"contact"`
}

func (f registerForm) input() ports.RegisterInput {
	return ports.RegisterInput{
		Username: strings.TrimSpace(f.Username),
		Password: f.Password,
		Name:     strings.TrimSpace(f.Name),
		Email:    strings.TrimSpace(f.Email),
		Contact:  strings.TrimSpace(f.Contact),
	}
}

type bookForm struct {
	Title           string `form:"title"           validate:"required"`
	Author          string `form:"author"          validate:"required"`
	ISBN            string `form:"isbn"            validate:"required"`
	Category        string `form:"category"`
	CopiesAvailable int    `form:"copiesAvailable" validate:"gte=0"`
	TotalCopies     int    `form:"totalCopies"     validate:"gte=0,gtefield=CopiesAvailable"`
}

func (f bookForm) book() domain.Book {
	return domain.Book{
		Title:           strings.TrimSpace(f.Title),
		Author:          strings.TrimSpace(f.Author),
		ISBN:            strings.TrimSpace(f.ISBN),
		Category:        strings.TrimSpace(f.Category),
		CopiesAvailable: f.CopiesAvailable,
		TotalCopies:     f.TotalCopies,
	}
}

type fineForm struct {
	MemberID int64   `form:"memberId" validate:"required,gt=0"`
	Amount   float64 `form:"amount"   validate:"gt=0"`
	Reason   string  `form:"reason"   validate:"required"`
	Tab      string  `form:"tab"`
}

// paymentForm carries the fine as the page showed it so the payment can be
// checked before the backend is contacted.
type paymentForm struct {
	Payment    float64 `form:"payment"    validate:"gt=0"`
	Amount     float64 `form:"amount"     validate:"gte=0"`
	AmountPaid float64 `form:"amountPaid" validate:"gte=0"`
	Status     string  `form:"status"     validate:"required"`
	Tab        string  `form:"tab"`
}

type waiveForm struct {
	Reason string `form:"reason" validate:"required"`
	Tab    string `form:"tab"`
}

type transitionForm struct {
	Current string `form:"current" validate:"required"`
	Target  string `form:"target"  validate:"required"`
	Tab     string `form:"tab"`
}

type memberForm struct {
	Name             string `form:"name"             validate:"required"`
	Email            string `form:"email"            validate:"required,email"`
	Contact          string `form:"contact"`
	MembershipStatus string `form:"membershipStatus"`
}

func (f memberForm) member() domain.Member {
	status := strings.ToUpper(strings.TrimSpace(f.MembershipStatus))
	if status == "" {
		status = "ACTIVE"
	}
	return domain.Member{
		Name:             strings.TrimSpace(f.Name),
		Email:            strings.TrimSpace(f.Email),
		Contact:          strings.TrimSpace(f.Contact),
		MembershipStatus: status,
	}
}

type adminForm struct {
	Username    string `form:"username"    validate:"required"`
	Password    string `form:"password"`
	Role        string `form:"role"        validate:"required"`
	Permissions string `form:"permissions"`
	Active      bool   `form:"active"`
}

func (f adminForm) admin() domain.Admin {
	perms := []string{}
	for _, p := range strings.Split(f.Permissions, ",") {
		if p = strings.TrimSpace(p); p != "" {
			perms = append(perms, p)
		}
	}
	return domain.Admin{
		Username:    f.Username,
		Password:    f.Password,
		Role:        f.Role,
		Permissions: perms,
		Active:      f.Active,
	}
}

type accountForm struct {
	Username string `form:"username"`
	Active   bool   `form:"active"`
}

type lendForm struct {
	MemberID int64 `form:"memberId" validate:"gt=0"`
	BookID   int64 `form:"bookId"   validate:"gt=0"`
}

type returnForm struct {
	MemberID int64 `form:"memberId"`
	RecordID int64 `form:"recordId" validate:"gt=0"`
}
