package ingest

// companyOverview is the hand-authored company description ingested under
// the "company_info" source. It is static content; the website is only
// referenced, never fetched.
const companyOverview = `Company Name: Spapperi N.T. S.r.l.

About:
Spapperi N.T. S.r.l. was founded in the early 1960s and operates with excellent market results
in several international countries. The company headquarters, recently inaugurated, covers
approximately 4,000 m2 and is located in Z.A. fraz. San Secondo 06012 in Citta di Castello, PG, Italy.

Specialization:
Spapperi specializes in agricultural machinery with a focus on Italian-made innovation.
The company produces a wide range of equipment including:
- Tobacco line machinery
- Transplanters (TN 100, TP series)
- Pneumatic seeders (SMP)
- Film layers (SF)
- Ridge formers (SM)
- Harvesting equipment
- Machinery for medicinal herbs and lavender

Contact Information:
Address: Via Pietro Ercolani, 5 b, 06012 Citta di Castello PG, ITALY
Phone: +39 075 85 78 156
Fax: +39 075 85 78 848
Email: info@spapperi.com
Website: https://www.spapperi.com/it/
VAT: P. IVA 03467460543

Key Products:
- RA832: Tobacco harvester
- MI100/MI100S: Semi-automatic harvester for medicinal herbs
- SMP: Pneumatic seeder
- BR 712: Trailer with vegetable collection belt
- SFB: Combined bed former
- TN 100: Transplanter

Innovation:
Spapperi represents Italian-made innovation in agricultural machinery,
combining traditional craftsmanship with modern technology.`

// CompanyOverview returns the static company description.
func (l *Loader) CompanyOverview() string {
	return companyOverview
}
