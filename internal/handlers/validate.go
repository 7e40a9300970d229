// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared; validator caches struct metadata per type.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Form structs carry their rules in `validate` tags and the notice shown
// for a failing field in `msg`. A field with a max rule may set `long` for
// the notice shown when only its length fails. Fields are checked in
// declaration order.

type categoryTypeForm struct {
	Name string `validate:"required,max=120" msg:"Category type name is required." long:"Category type name is too long."`
}

type categoryForm struct {
	Name           string `validate:"required,max=120" msg:"Category name is required." long:"Category name is too long."`
	CategoryTypeID string `validate:"required" msg:"Please select a category type."`
}

type courseForm struct {
	Title          string `validate:"required,max=300" msg:"Course title is required." long:"Course title is too long."`
	Description    string `validate:"max=20000" msg:"Description is too long."`
	Video          string `validate:"omitempty,url" msg:"Video must be a valid URL."`
	CategoryTypeID string
}

type courseMaterialForm struct {
	CourseID    string `validate:"required" msg:"Please select a course."`
	Title       string `validate:"required,max=300" msg:"Material title is required." long:"Material title is too long."`
	Description string
	Duration    string
	Fees        string `validate:"omitempty,numeric" msg:"Fees must be a number."`
	IsNew       bool
	HasMedia    bool `validate:"required_if=IsNew true" msg:"Media file is required."`
}

type freeResourceForm struct {
	Title string `validate:"required,max=300" msg:"Please fill in all fields before submitting." long:"Title is too long."`
	Type  string `validate:"oneof=pdf video" msg:"Type must be pdf or video."`
}

type freeResourceMaterialForm struct {
	Title          string `validate:"required" msg:"All fields except media are required."`
	CategoryTypeID string `validate:"required" msg:"All fields except media are required."`
	CategoryID     string `validate:"required" msg:"All fields except media are required."`
	FreeResourceID string `validate:"required" msg:"All fields except media are required."`
	Type           string `validate:"oneof=pdf video" msg:"Type must be pdf or video."`
	IsNew          bool
	MediaURL       string `validate:"required_if=Type video" msg:"Video URL is required."`
	HasMedia       bool   `validate:"required_if=Type pdf IsNew true" msg:"PDF file is required."`
}

type achievementForm struct {
	Title    string `validate:"required,max=300" msg:"Please fill all required fields." long:"Title is too long."`
	Type     string `validate:"oneof=video gallery" msg:"Type must be video or gallery."`
	Year     string `validate:"required,number,len=4" msg:"Year must be a four-digit number."`
	IsNew    bool
	MediaURL string `validate:"required_if=Type video" msg:"Video URL is required."`
	HasMedia bool   `validate:"required_if=Type gallery IsNew true" msg:"Image file is required."`
}

type counsellingForm struct {
	Title          string `validate:"required,max=300" msg:"Please fill all required fields." long:"Title is too long."`
	Description    string `validate:"max=20000" msg:"Description is too long."`
	Price          string `validate:"required,numeric" msg:"Price must be a number greater than zero."`
	CategoryTypeID string `validate:"required" msg:"Please fill all required fields."`
	CategoryID     string `validate:"required" msg:"Please fill all required fields."`
	IsNew          bool
	HasMedia       bool `validate:"required_if=IsNew true" msg:"Media file is required."`
}

type bannerForm struct {
	Title       string `validate:"required,max=200" msg:"Title and image are required" long:"Title is too long."`
	Description string `validate:"max=1000" msg:"Description is too long."`
	Link        string `validate:"omitempty,url" msg:"Link must be a valid URL."`
	IsNew       bool
	HasImage    bool `validate:"required_if=IsNew true" msg:"Title and image are required"`
}

type loginForm struct {
	Email    string `validate:"required,email" msg:"Please enter a valid email address."`
	Password string `validate:"required,min=6" msg:"Password must be at least 6 characters."`
}

// check validates v and returns the notice for the first failing field,
// or "" when v is valid.
func check(v any) string {
	err := validate.Struct(v)
	if err == nil {
		return ""
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid input."
	}

	fe := verrs[0]
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if f, ok := t.FieldByName(fe.StructField()); ok {
		if long := f.Tag.Get("long"); long != "" && fe.Tag() == "max" {
			return long
		}
		if msg := f.Tag.Get("msg"); msg != "" {
			return msg
		}
	}
	return fe.Field() + " is invalid."
}

// parsePrice parses a positive price; ok is false for anything else.
func parsePrice(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
