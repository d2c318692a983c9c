package resolver

// dataoneDomains lists every host known to run a DataOne member node
// front-end, carried verbatim from original_source/src/resolver.rs's
// DATAONE_DOMAINS — this is data, not style, so it is reproduced exactly.
var dataoneDomains = map[string]bool{
	"arcticdata.io":                     true,
	"knb.ecoinformatics.org":            true,
	"data.pndb.fr":                      true,
	"opc.dataone.org":                   true,
	"portal.edirepository.org":          true,
	"goa.nceas.ucsb.edu":                true,
	"data.piscoweb.org":                 true,
	"adc.arm.gov":                       true,
	"scidb.cn":                          true,
	"data.ess-dive.lbl.gov":             true,
	"hydroshare.org":                    true,
	"ecl.earthchem.org":                 true,
	"get.iedadata.org":                  true,
	"usap-dc.org":                       true,
	"iys.hakai.org":                     true,
	"doi.pangaea.de":                    true,
	"rvdata.us":                         true,
	"sead-published.ncsa.illinois.edu":  true,
}

// dataverseDomains lists every known Dataverse installation host, carried
// verbatim from original_source/src/resolver.rs's DATAVERSE_DOMAINS.
var dataverseDomains = map[string]bool{
	"www.march.es":                      true,
	"www.murray.harvard.edu":            true,
	"abacus.library.ubc.ca":             true,
	"ada.edu.au":                        true,
	"adattar.unideb.hu":                 true,
	"archive.data.jhu.edu":              true,
	"borealisdata.ca":                   true,
	"dados.ipb.pt":                      true,
	"dadosdepesquisa.fiocruz.br":        true,
	"darus.uni-stuttgart.de":            true,
	"data.aussda.at":                    true,
	"data.cimmyt.org":                   true,
	"data.fz-juelich.de":                true,
	"data.goettingen-research-online.de": true,
	"data.inrae.fr":                     true,
	"data.scielo.org":                   true,
	"data.sciencespo.fr":                true,
	"data.tdl.org":                      true,
	"data.univ-gustave-eiffel.fr":       true,
	"datarepositorium.uminho.pt":        true,
	"datasets.iisg.amsterdam":           true,
	"dataspace.ust.hk":                  true,
	"dataverse.asu.edu":                 true,
	"dataverse.cirad.fr":                true,
	"dataverse.csuc.cat":                true,
	"dataverse.harvard.edu":             true,
	"dataverse.iit.it":                  true,
	"dataverse.ird.fr":                  true,
	"dataverse.lib.umanitoba.ca":        true,
	"dataverse.lib.unb.ca":              true,
	"dataverse.lib.virginia.edu":        true,
	"dataverse.nl":                      true,
	"dataverse.no":                      true,
	"dataverse.openforestdata.pl":       true,
	"dataverse.scholarsportal.info":     true,
	"dataverse.theacss.org":             true,
	"dataverse.ucla.edu":                true,
	"dataverse.unc.edu":                 true,
	"dataverse.unimi.it":                true,
	"dataverse.yale-nus.edu.sg":         true,
	"dorel.univ-lorraine.fr":            true,
	"dvn.fudan.edu.cn":                  true,
	"edatos.consorciomadrono.es":        true,
	"edmond.mpdl.mpg.de":                true,
	"heidata.uni-heidelberg.de":         true,
	"lida.dataverse.lt":                 true,
	"mxrdr.icm.edu.pl":                  true,
	"osnadata.ub.uni-osnabrueck.de":     true,
	"planetary-data-portal.org":         true,
	"qdr.syr.edu":                       true,
	"rdm.aau.edu.et":                    true,
	"rdr.kuleuven.be":                   true,
	"rds.icm.edu.pl":                    true,
	"recherche.data.gouv.fr":            true,
	"redu.unicamp.br":                   true,
	"repod.icm.edu.pl":                  true,
	"repositoriopesquisas.ibict.br":     true,
	"research-data.urosario.edu.co":     true,
	"researchdata.cuhk.edu.hk":          true,
	"researchdata.ntu.edu.sg":           true,
	"rin.lipi.go.id":                    true,
	"ssri.is":                           true,
	"www.seanoe.org":                    true,
	"trolling.uit.no":                   true,
	"www.sodha.be":                      true,
	"www.uni-hildesheim.de":             true,
	"dataverse.acg.maine.edu":           true,
	"dataverse.icrisat.org":             true,
	"datos.pucp.edu.pe":                 true,
	"datos.uchile.cl":                   true,
	"opendata.pku.edu.cn":               true,
}
