package main

import (
	"context"

	"github.com/trezcool/shule/core/class"
	"github.com/trezcool/shule/core/subject"
)

var (
	defaultClasses = []class.NewClass{
		{Name: "Maternelle 1", Level: "Maternelle", Capacity: 25},
		{Name: "Maternelle 2", Level: "Maternelle", Capacity: 25},
		{Name: "CI", Level: "Primaire", Capacity: 30},
		{Name: "CP", Level: "Primaire", Capacity: 30},
		{Name: "CE1", Level: "Primaire", Capacity: 30},
		{Name: "CE2", Level: "Primaire", Capacity: 30},
		{Name: "CM1", Level: "Primaire", Capacity: 30},
		{Name: "CM2", Level: "Primaire", Capacity: 30},
	}

	defaultSubjects = []subject.NewSubject{
		{Name: "ANGLAIS", Coefficient: 1, Category: subject.CategoryCore},
		{Name: "ES", Coefficient: 1, Category: subject.CategoryCore},
		{Name: "EST", Coefficient: 1, Category: subject.CategoryCore},
		{Name: "EA", Coefficient: 1, Category: subject.CategoryCore},
		{Name: "MATHÉMATIQUES", Coefficient: 1, Category: subject.CategoryCore},
		{Name: "LECTURE", Coefficient: 1, Category: subject.CategoryCore},
		{Name: "EXPRESSION ÉCRITE", Coefficient: 1, Category: subject.CategoryCore},
		{Name: "POÉSIE/CHANT", Coefficient: 1, Category: subject.CategoryCore},
	}
)

// seed creates the default classes and subjects; existing ones are left
// untouched.
func (cli *commandLine) seed() error {
	ctx := context.Background()

	classSvc := class.NewService(cli.classRepo)
	if err := classSvc.Load(ctx); err != nil {
		return err
	}
	existingClasses := make(map[string]bool)
	for _, cls := range classSvc.All() {
		existingClasses[cls.Name] = true
	}
	for _, nc := range defaultClasses {
		if existingClasses[nc.Name] {
			continue
		}
		if _, err := classSvc.Create(ctx, nc); err != nil {
			return err
		}
		logger.Printf("created class %q\n", nc.Name)
	}

	subjectSvc := subject.NewService(cli.subjectRepo)
	if err := subjectSvc.Load(ctx); err != nil {
		return err
	}
	existingSubjects := make(map[string]bool)
	for _, sub := range subjectSvc.All() {
		existingSubjects[sub.Name] = true
	}
	for _, ns := range defaultSubjects {
		if existingSubjects[ns.Name] {
			continue
		}
		if _, err := subjectSvc.Create(ctx, ns); err != nil {
			return err
		}
		logger.Printf("created subject %q\n", ns.Name)
	}
	return nil
}
