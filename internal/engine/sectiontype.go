package engine

// SectionType is the closed set of canonical resume section types.
type SectionType string

const (
	SectionContact        SectionType = "contact"
	SectionSummary        SectionType = "summary"
	SectionExperience     SectionType = "experience"
	SectionEducation      SectionType = "education"
	SectionSkills         SectionType = "skills"
	SectionProjects       SectionType = "projects"
	SectionCertifications SectionType = "certifications"
	SectionAchievements   SectionType = "achievements"
	SectionLanguages      SectionType = "languages"
	SectionVolunteer      SectionType = "volunteer"
	SectionOther          SectionType = "other"
)

// AllSectionTypes lists every canonical section type in classification order.
func AllSectionTypes() []SectionType {
	return []SectionType{
		SectionContact,
		SectionSummary,
		SectionExperience,
		SectionEducation,
		SectionSkills,
		SectionProjects,
		SectionCertifications,
		SectionAchievements,
		SectionLanguages,
		SectionVolunteer,
		SectionOther,
	}
}

// Valid reports whether t is one of the canonical section types.
func (t SectionType) Valid() bool {
	switch t {
	case SectionContact, SectionSummary, SectionExperience, SectionEducation,
		SectionSkills, SectionProjects, SectionCertifications, SectionAchievements,
		SectionLanguages, SectionVolunteer, SectionOther:
		return true
	default:
		return false
	}
}
