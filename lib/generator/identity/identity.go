// Package identity генерирует правдоподобных покупателей и их почтовые
// адреса для одной фиксированной локали (по умолчанию fr_FR).
//
// Случайность берется из *gofakeit.Faker: в боевом режиме это глобальный
// генератор, в тестах его можно заменить генератором с фиксированным seed.
package identity

import (
	"errors"
	"fmt"

	"github.com/YusovID/order-faker/internal/models"
	"github.com/brianvoe/gofakeit/v7"
)

var ErrEmptyCorpus = errors.New("identity corpus is empty")

var genders = []string{string(models.Male), string(models.Female)}

type Generator struct {
	faker  *gofakeit.Faker
	corpus Corpus
}

// New проверяет корпус и возвращает генератор. Пустой список в корпусе
// делает генерацию невозможной, поэтому ошибка возвращается сразу,
// а не подменяется значениями по умолчанию.
func New(faker *gofakeit.Faker, corpus Corpus) (*Generator, error) {
	const fn = "generator.identity.New"

	if faker == nil {
		faker = gofakeit.GlobalFaker
	}

	lists := map[string]int{
		"male names":     len(corpus.MaleNames),
		"female names":   len(corpus.FemaleNames),
		"last names":     len(corpus.LastNames),
		"street types":   len(corpus.StreetTypes),
		"street names":   len(corpus.StreetNames),
		"cities":         len(corpus.Cities),
		"phone prefixes": len(corpus.PhonePrefix),
	}
	for name, size := range lists {
		if size == 0 {
			return nil, fmt.Errorf("%s: %w: no %s", fn, ErrEmptyCorpus, name)
		}
	}

	if corpus.Country == "" {
		return nil, fmt.Errorf("%s: %w: no country", fn, ErrEmptyCorpus)
	}

	return &Generator{faker: faker, corpus: corpus}, nil
}

// Person выбирает пол равновероятно, затем имя из списка этого пола
// и фамилию из общего списка.
func (g *Generator) Person() models.Identity {
	gender := models.Gender(g.faker.RandomString(genders))

	names := g.corpus.FemaleNames
	if gender == models.Male {
		names = g.corpus.MaleNames
	}

	return models.Identity{
		FirstName: g.faker.RandomString(names),
		LastName:  g.faker.RandomString(g.corpus.LastNames),
		Gender:    gender,
	}
}

// Address создает адрес для person. Город, регион и номер департамента
// берутся из одной строки корпуса, поэтому почтовый индекс согласован с городом.
func (g *Generator) Address(person models.Identity) models.Address {
	city := g.corpus.Cities[g.faker.Number(0, len(g.corpus.Cities)-1)]

	street := fmt.Sprintf("%d %s %s",
		g.faker.Number(1, 199),
		g.faker.RandomString(g.corpus.StreetTypes),
		g.faker.RandomString(g.corpus.StreetNames),
	)

	return models.Address{
		FirstName: person.FirstName,
		LastName:  person.LastName,
		Address1:  street,
		Phone:     g.faker.RandomString(g.corpus.PhonePrefix) + g.faker.Numerify(" ## ## ## ##"),
		City:      city.Name,
		Province:  city.Region,
		Country:   g.corpus.Country,
		Zip:       fmt.Sprintf("%s%03d", city.Dept, g.faker.Number(0, 99)*10),
	}
}
